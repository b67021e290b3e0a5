package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize strips terminal control sequences from untrusted text so
// it can be written to the scrollback log without executing in the
// terminal. Escape-introduced sequences (CSI, OSC, DCS, APC), C0
// controls other than TAB, LF and CR, DEL and the C1 range are all
// removed; printable text and valid UTF-8 pass through.
//
// The common case of already-clean text returns the input string
// unchanged without allocating.
func Sanitize(s string) string {
	if isClean(s) {
		return s
	}
	// Drop whole escape sequences first, then any bare controls that
	// were not part of a well-formed sequence.
	stripped := ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if isForbiddenControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isClean(s string) bool {
	for _, r := range s {
		if isForbiddenControl(r) {
			return false
		}
	}
	return true
}

// isForbiddenControl reports runes that must never reach the
// terminal: C0 controls except TAB/LF/CR, DEL, and the C1 range that
// some terminals honor as 8-bit escape introducers.
func isForbiddenControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	if r < 0x20 || r == 0x7f {
		return true
	}
	return r >= 0x80 && r <= 0x9f
}
