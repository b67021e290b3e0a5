package render

// Frame is the render target handed to a model's View method: the
// cell buffer for one frame plus the degradation tier in effect.
type Frame struct {
	buf         *Buffer
	degradation Degradation
}

// NewFrame wraps a fresh buffer of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{buf: NewBuffer(width, height)}
}

// Width returns the frame width in cells.
func (f *Frame) Width() int { return f.buf.Width() }

// Height returns the frame height in cells.
func (f *Frame) Height() int { return f.buf.Height() }

// Buffer exposes the underlying cell grid for direct drawing.
func (f *Frame) Buffer() *Buffer { return f.buf }

// SetString writes s at (x, y) with the given style.
func (f *Frame) SetString(x, y int, s string, style Style) int {
	return f.buf.SetString(x, y, s, style)
}

// Clear blanks the frame.
func (f *Frame) Clear() { f.buf.Clear() }

// Degradation returns the tier the view should render at. Views can
// consult it to drop effects or simplify borders under load.
func (f *Frame) Degradation() Degradation { return f.degradation }

// SetDegradation is called by the runtime before View runs.
func (f *Frame) SetDegradation(d Degradation) { f.degradation = d }
