package render

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ScreenMode selects how the UI occupies the terminal.
type ScreenMode int

const (
	// ScreenInline keeps the UI as a fixed-height region while the
	// rest of the terminal scrolls normally.
	ScreenInline ScreenMode = iota
	// ScreenAlt takes over the whole alternate screen buffer.
	ScreenAlt
)

// Anchor places the inline UI region at the top or bottom of the
// terminal.
type Anchor int

const (
	AnchorBottom Anchor = iota
	AnchorTop
)

// Writer owns the terminal output protocol: presenting frames by
// diffing against the previously presented buffer, and the log path
// that writes sanitized text into scrollback without disturbing the
// UI region.
//
// Writer is synchronous and must only be used from the runtime's
// loop goroutine.
type Writer struct {
	out      io.Writer
	mode     ScreenMode
	anchor   Anchor
	uiHeight int

	width  int
	height int

	last *Buffer
	log  *zap.Logger
}

// NewWriter builds a writer for the given output and screen mode.
// uiHeight is the inline region height and is ignored in alt-screen
// mode. A nil logger is replaced with a nop logger.
func NewWriter(out io.Writer, mode ScreenMode, anchor Anchor, uiHeight int, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if uiHeight < 1 {
		uiHeight = 1
	}
	return &Writer{
		out:      out,
		mode:     mode,
		anchor:   anchor,
		uiHeight: uiHeight,
		log:      logger,
	}
}

// SetSize records the terminal dimensions. The previously presented
// buffer is discarded, forcing the next Present to repaint fully.
func (w *Writer) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	w.width = width
	w.height = height
	w.last = nil
}

// UIHeight returns the number of rows a frame buffer should have:
// the full terminal height in alt-screen mode, the inline region
// height otherwise.
func (w *Writer) UIHeight() int {
	if w.mode == ScreenAlt {
		return w.height
	}
	if w.uiHeight > w.height {
		return w.height
	}
	return w.uiHeight
}

// Present writes buf to the terminal, repainting only the rows that
// differ from the previously presented buffer.
func (w *Writer) Present(buf *Buffer) error {
	var sb strings.Builder
	repainted := 0
	for y := 0; y < buf.Height(); y++ {
		if w.last != nil && buf.RowEqual(w.last, y) {
			continue
		}
		row := w.screenRow(y, buf.Height())
		if row > w.height {
			break
		}
		fmt.Fprintf(&sb, "\x1b[%d;1H\x1b[2K", row)
		writeRow(&sb, buf, y)
		repainted++
	}
	if repainted == 0 {
		return nil
	}
	sb.WriteString("\x1b[0m")
	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	w.last = buf.Clone()
	w.log.Debug("frame presented",
		zap.Int("rows", buf.Height()),
		zap.Int("repainted", repainted),
	)
	return nil
}

// WriteLog writes text into the scrollback region. The caller is
// expected to have sanitized it and terminated it with a newline. In
// alt-screen mode there is no scrollback; the text goes to the
// logger instead.
func (w *Writer) WriteLog(text string) error {
	if w.mode == ScreenAlt {
		w.log.Info("app log", zap.String("text", strings.TrimRight(text, "\n")))
		return nil
	}

	var sb strings.Builder
	switch w.anchor {
	case AnchorBottom:
		// Clear the UI region, let the log scroll into history above
		// it, then repaint the region from the last presented frame.
		top := w.screenRow(0, w.UIHeight())
		fmt.Fprintf(&sb, "\x1b[%d;1H\x1b[0J", top)
		sb.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))
	case AnchorTop:
		// With the UI pinned to the top, logs accumulate beneath it.
		fmt.Fprintf(&sb, "\x1b[%d;1H", w.height)
		sb.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))
	}
	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	if w.last != nil {
		// Force a full region repaint over the area the log reclaimed.
		prev := w.last
		w.last = nil
		return w.Present(prev)
	}
	return nil
}

// screenRow maps a buffer row to its 1-based terminal row given the
// buffer height.
func (w *Writer) screenRow(y, bufHeight int) int {
	if w.mode == ScreenAlt || w.anchor == AnchorTop {
		return y + 1
	}
	start := w.height - bufHeight
	if start < 0 {
		start = 0
	}
	return start + y + 1
}

// writeRow emits one buffer row with minimal SGR churn: style
// sequences are emitted only where the style changes between runs.
func writeRow(sb *strings.Builder, buf *Buffer, y int) {
	var cur Style
	styled := false
	for x := 0; x < buf.Width(); x++ {
		c, ok := buf.Get(x, y)
		if !ok || c.IsContinuation() {
			continue
		}
		if !styled || c.Style != cur {
			sb.WriteString(c.Style.sgr())
			cur = c.Style
			styled = true
		}
		sb.WriteString(c.content())
	}
}
