// Package terminal owns the process-wide terminal session: raw mode,
// screen and reporting modes, and the decoding of raw bytes into
// input events.
//
// A Session is a scoped resource. New acquires every piece of
// terminal state the configuration asks for (raw mode, alternate
// screen, mouse capture, bracketed paste, focus reporting) and Close
// releases all of it in reverse order. Close is idempotent and safe
// to call from any exit path, so callers can defer it once and also
// invoke it explicitly on errors.
//
// Input decoding runs on an internal goroutine that reads stdin
// through a cancelable reader and parses UTF-8 runes, CSI/SS3 key
// sequences, SGR mouse reports, bracketed paste and focus reports
// into event values. The consuming side is single-threaded by
// contract: Poll blocks with a timeout for availability and Read
// drains without blocking, both from the runtime's loop goroutine
// only.
//
// Window size changes arrive as SIGWINCH, are translated to
// event.Resize and merged into the same event queue as keyboard and
// mouse input.
package terminal
