// Package render provides the drawing surface and terminal output
// side of the framework: the cell buffer a view draws into, the frame
// handed to Model.View, the sanitizer guarding the scrollback log
// path, the frame budget, and the diffing terminal writer.
//
// # Surface
//
// A Buffer is a width×height grid of cells. Each cell holds one
// grapheme cluster and its display width; wide clusters (CJK, emoji)
// occupy their leading cell plus continuation cells. Views write
// through Frame, which wraps a buffer together with the cursor
// position and the current degradation tier.
//
// # Writer
//
// Writer owns the terminal output protocol. It presents buffers by
// diffing against the previously presented buffer and repainting only
// the lines that changed, and it carries the log path: sanitized text
// written into scrollback above (or below) the UI region in inline
// mode. The writer is synchronous and must only be used from the
// runtime's loop goroutine.
//
// # Budget
//
// Budget decides, once per frame, whether rendering may proceed, and
// tracks a degradation tier that views can consult to cheapen their
// output under sustained load. Exceeding the frame allowance
// repeatedly degrades one tier; a run of clean frames upgrades again.
package render
