package render

import (
	"fmt"
	"strings"
)

// ColorKind discriminates the color encodings a Style can carry.
type ColorKind int

const (
	// ColorDefault is the terminal's default foreground/background.
	ColorDefault ColorKind = iota
	// ColorANSI is one of the 16 basic colors (0-15).
	ColorANSI
	// Color256 is an xterm 256-palette index.
	Color256
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a terminal color in any of the common encodings.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// ANSI returns one of the 16 basic colors.
func ANSI(n uint8) Color { return Color{Kind: ColorANSI, Index: n} }

// Palette returns an xterm 256-palette color.
func Palette(n uint8) Color { return Color{Kind: Color256, Index: n} }

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Style holds the visual attributes of a cell.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	Reverse   bool
}

// IsZero reports whether the style is the terminal default.
func (s Style) IsZero() bool {
	return s == Style{}
}

// sgr renders the style as an SGR escape sequence. The zero style
// renders as a full reset.
func (s Style) sgr() string {
	var parts []string
	parts = append(parts, "0")
	if s.Bold {
		parts = append(parts, "1")
	}
	if s.Faint {
		parts = append(parts, "2")
	}
	if s.Italic {
		parts = append(parts, "3")
	}
	if s.Underline {
		parts = append(parts, "4")
	}
	if s.Reverse {
		parts = append(parts, "7")
	}
	parts = appendColor(parts, s.FG, false)
	parts = appendColor(parts, s.BG, true)
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func appendColor(parts []string, c Color, background bool) []string {
	base := 30
	if background {
		base = 40
	}
	switch c.Kind {
	case ColorDefault:
		return parts
	case ColorANSI:
		n := int(c.Index)
		if n < 8 {
			return append(parts, fmt.Sprintf("%d", base+n))
		}
		return append(parts, fmt.Sprintf("%d", base+60+n-8))
	case Color256:
		return append(parts, fmt.Sprintf("%d;5;%d", base+8, c.Index))
	case ColorRGB:
		return append(parts, fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.R, c.G, c.B))
	}
	return parts
}

// Cell is one grid position: a grapheme cluster, its display width
// and its style. A zero Cell renders as a blank.
type Cell struct {
	// Content is the grapheme cluster occupying this cell. Empty for
	// blanks and for continuation cells of a wide cluster.
	Content string
	// Width is the display width of Content: 1 for most clusters, 2
	// for wide ones, 0 for blanks and -1 for continuation cells.
	Width int
	// Style is the cell's visual attributes.
	Style Style
}

// NewCell builds a single-rune cell of width 1.
func NewCell(r rune) Cell {
	return Cell{Content: string(r), Width: 1}
}

// continuation marks the trailing cells of a wide grapheme cluster.
func continuation(style Style) Cell {
	return Cell{Width: -1, Style: style}
}

// IsContinuation reports whether the cell is a trailing cell of a
// wide grapheme cluster.
func (c Cell) IsContinuation() bool {
	return c.Width < 0
}

// content returns the printable content, substituting a space for
// blanks so rows always render at full width.
func (c Cell) content() string {
	if c.Content == "" {
		return " "
	}
	return c.Content
}
