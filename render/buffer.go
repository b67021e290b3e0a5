package render

import "github.com/rivo/uniseg"

// Buffer is a width×height grid of cells, the in-memory image of one
// terminal region. Coordinates are zero-based with the origin at the
// top left.
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// NewBuffer allocates a blank buffer. Dimensions are clamped to a
// minimum of 1 so a zero-sized terminal report cannot produce an
// unusable grid.
func NewBuffer(width, height int) *Buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Buffer{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the buffer width in cells.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in cells.
func (b *Buffer) Height() int { return b.height }

// Get returns the cell at (x, y). Out-of-bounds reads return a blank
// cell and false.
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Set places a cell at (x, y). Out-of-bounds writes are ignored.
// Setting over the lead or trail of an existing wide cluster blanks
// the cluster's other cell first, so the row never holds half a
// grapheme.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.clearCluster(x, y)
	if c.Width > 1 {
		// A wide cluster that would overflow the row is dropped
		// rather than wrapped.
		if x+c.Width > b.width {
			return
		}
		b.cells[y*b.width+x] = c
		for i := 1; i < c.Width; i++ {
			b.clearCluster(x+i, y)
			b.cells[y*b.width+x+i] = continuation(c.Style)
		}
		return
	}
	b.cells[y*b.width+x] = c
}

// clearCluster blanks the full extent of any wide cluster covering
// (x, y).
func (b *Buffer) clearCluster(x, y int) {
	idx := y*b.width + x
	cur := b.cells[idx]
	if cur.IsContinuation() {
		// Walk left to the lead cell.
		for lead := x - 1; lead >= 0; lead-- {
			li := y*b.width + lead
			if !b.cells[li].IsContinuation() {
				b.blankFrom(lead, y, b.cells[li].Width)
				break
			}
		}
		return
	}
	if cur.Width > 1 {
		b.blankFrom(x, y, cur.Width)
	}
}

func (b *Buffer) blankFrom(x, y, width int) {
	for i := 0; i < width && x+i < b.width; i++ {
		b.cells[y*b.width+x+i] = Cell{}
	}
}

// SetString writes s starting at (x, y), segmenting it into grapheme
// clusters and advancing by display width. Writing stops at the end
// of the row. It returns the x position after the last cell written.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return x
	}
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if x >= b.width {
			break
		}
		w := gr.Width()
		if w <= 0 {
			// Zero-width clusters (combining marks arriving alone)
			// cannot occupy a cell of their own.
			continue
		}
		b.Set(x, y, Cell{Content: gr.Str(), Width: w, Style: style})
		x += w
	}
	return x
}

// Fill sets every cell of the buffer to c.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Clear resets the buffer to blanks.
func (b *Buffer) Clear() {
	b.Fill(Cell{})
}

// Resize returns a buffer of the new dimensions with the overlapping
// region copied over. The receiver is unchanged.
func (b *Buffer) Resize(width, height int) *Buffer {
	nb := NewBuffer(width, height)
	for y := 0; y < b.height && y < nb.height; y++ {
		for x := 0; x < b.width && x < nb.width; x++ {
			nb.cells[y*nb.width+x] = b.cells[y*b.width+x]
		}
	}
	return nb
}

// RowEqual reports whether row y holds identical cells in both
// buffers. Buffers of differing width never compare equal.
func (b *Buffer) RowEqual(other *Buffer, y int) bool {
	if other == nil || b.width != other.width {
		return false
	}
	if y < 0 || y >= b.height || y >= other.height {
		return false
	}
	start := y * b.width
	for x := 0; x < b.width; x++ {
		if b.cells[start+x] != other.cells[start+x] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	nb := &Buffer{width: b.width, height: b.height, cells: make([]Cell, len(b.cells))}
	copy(nb.cells, b.cells)
	return nb
}

// Row renders row y as a plain string without styling, used by tests
// and headless capture.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var out []byte
	for x := 0; x < b.width; x++ {
		c := b.cells[y*b.width+x]
		if c.IsContinuation() {
			continue
		}
		out = append(out, c.content()...)
	}
	return string(out)
}
