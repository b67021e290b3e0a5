package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/sfncore/frankentui/event"
)

// decodeResult reports how decode consumed input.
type decodeResult int

const (
	// decoded: one event produced, n bytes consumed.
	decoded decodeResult = iota
	// skipped: n bytes consumed without producing an event.
	skipped
	// needMore: the buffer ends mid-sequence; read more bytes and
	// retry.
	needMore
)

// decode parses the leading event out of buf. It is a pure function
// over the byte stream so it can be tested without a terminal.
func decode(buf []byte) (ev event.Event, n int, res decodeResult) {
	if len(buf) == 0 {
		return nil, 0, needMore
	}

	b := buf[0]
	switch {
	case b == 0x1b:
		return decodeEscape(buf)
	case b == '\r' || b == '\n':
		return event.Key{Kind: event.KeyEnter}, 1, decoded
	case b == '\t':
		return event.Key{Kind: event.KeyTab}, 1, decoded
	case b == 0x7f || b == 0x08:
		return event.Key{Kind: event.KeyBackspace}, 1, decoded
	case b == ' ':
		return event.Key{Kind: event.KeySpace}, 1, decoded
	case b < 0x20:
		// Remaining C0 controls are ctrl+letter chords.
		if b >= 0x01 && b <= 0x1a {
			return event.Key{Kind: event.KeyRune, Rune: rune('a' + b - 1), Mod: event.ModCtrl}, 1, decoded
		}
		return nil, 1, skipped
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size == 1 {
		if !utf8.FullRune(buf) {
			return nil, 0, needMore
		}
		return nil, 1, skipped
	}
	return event.Key{Kind: event.KeyRune, Rune: r}, size, decoded
}

// decodeEscape handles everything introduced by ESC: bare escape,
// alt-modified keys, SS3 function keys and CSI sequences.
func decodeEscape(buf []byte) (event.Event, int, decodeResult) {
	if len(buf) == 1 {
		// A lone ESC is the escape key; terminals deliver real
		// sequences in a single burst.
		return event.Key{Kind: event.KeyEsc}, 1, decoded
	}

	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return nil, 0, needMore
		}
		if k, ok := ss3Keys[buf[2]]; ok {
			return k, 3, decoded
		}
		return nil, 3, skipped
	case 0x1b:
		return event.Key{Kind: event.KeyEsc}, 1, decoded
	}

	// ESC followed by a printable byte is an alt-modified key.
	ev, n, res := decode(buf[1:])
	if res == decoded {
		if k, ok := ev.(event.Key); ok {
			k.Mod |= event.ModAlt
			return k, n + 1, decoded
		}
	}
	if res == needMore {
		return nil, 0, needMore
	}
	return nil, n + 1, skipped
}

var ss3Keys = map[byte]event.Key{
	'A': {Kind: event.KeyUp},
	'B': {Kind: event.KeyDown},
	'C': {Kind: event.KeyRight},
	'D': {Kind: event.KeyLeft},
	'H': {Kind: event.KeyHome},
	'F': {Kind: event.KeyEnd},
	'P': {Kind: event.KeyF1},
	'Q': {Kind: event.KeyF2},
	'R': {Kind: event.KeyF3},
	'S': {Kind: event.KeyF4},
}

var csiTildeKeys = map[int]event.KeyKind{
	1:  event.KeyHome,
	2:  event.KeyInsert,
	3:  event.KeyDelete,
	4:  event.KeyEnd,
	5:  event.KeyPgUp,
	6:  event.KeyPgDown,
	7:  event.KeyHome,
	8:  event.KeyEnd,
	11: event.KeyF1,
	12: event.KeyF2,
	13: event.KeyF3,
	14: event.KeyF4,
	15: event.KeyF5,
	17: event.KeyF6,
	18: event.KeyF7,
	19: event.KeyF8,
	20: event.KeyF9,
	21: event.KeyF10,
	23: event.KeyF11,
	24: event.KeyF12,
}

func decodeCSI(buf []byte) (event.Event, int, decodeResult) {
	// Find the final byte (0x40-0x7e) after the "ESC [" introducer.
	end := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, 0, needMore
	}
	params := string(buf[2:end])
	final := buf[end]
	consumed := end + 1

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		kind := map[byte]event.KeyKind{
			'A': event.KeyUp, 'B': event.KeyDown,
			'C': event.KeyRight, 'D': event.KeyLeft,
			'H': event.KeyHome, 'F': event.KeyEnd,
		}[final]
		return event.Key{Kind: kind, Mod: csiModifier(params)}, consumed, decoded
	case 'Z':
		return event.Key{Kind: event.KeyTab, Mod: event.ModShift}, consumed, decoded
	case 'I':
		return event.Focus{Gained: true}, consumed, decoded
	case 'O':
		return event.Focus{Gained: false}, consumed, decoded
	case '~':
		return decodeTilde(buf, params, consumed)
	case 'M', 'm':
		if strings.HasPrefix(params, "<") {
			return decodeSGRMouse(params[1:], final == 'M', consumed)
		}
	}
	return nil, consumed, skipped
}

func decodeTilde(buf []byte, params string, consumed int) (event.Event, int, decodeResult) {
	fields := strings.Split(params, ";")
	code := atoi(fields[0])

	if code == 200 {
		return decodePaste(buf, consumed)
	}
	if kind, ok := csiTildeKeys[code]; ok {
		mod := event.Mod(0)
		if len(fields) > 1 {
			mod = modFromParam(atoi(fields[1]))
		}
		return event.Key{Kind: kind, Mod: mod}, consumed, decoded
	}
	return nil, consumed, skipped
}

// decodePaste consumes a bracketed paste: everything between the
// "ESC [ 200 ~" opener already consumed and the "ESC [ 201 ~"
// terminator.
func decodePaste(buf []byte, start int) (event.Event, int, decodeResult) {
	const terminator = "\x1b[201~"
	idx := strings.Index(string(buf[start:]), terminator)
	if idx == -1 {
		return nil, 0, needMore
	}
	text := string(buf[start : start+idx])
	return event.Paste{Text: text}, start + idx + len(terminator), decoded
}

// decodeSGRMouse parses "<b;x;yM" style reports (the "<" is already
// stripped).
func decodeSGRMouse(params string, press bool, consumed int) (event.Event, int, decodeResult) {
	fields := strings.Split(params, ";")
	if len(fields) != 3 {
		return nil, consumed, skipped
	}
	btn := atoi(fields[0])
	x := atoi(fields[1]) - 1
	y := atoi(fields[2]) - 1

	m := event.Mouse{X: x, Y: y}
	if btn&4 != 0 {
		m.Mod |= event.ModShift
	}
	if btn&8 != 0 {
		m.Mod |= event.ModAlt
	}
	if btn&16 != 0 {
		m.Mod |= event.ModCtrl
	}

	switch {
	case btn&64 != 0:
		if btn&1 == 0 {
			m.Button = event.MouseWheelUp
		} else {
			m.Button = event.MouseWheelDown
		}
		m.Action = event.MousePress
	default:
		switch btn & 3 {
		case 0:
			m.Button = event.MouseLeft
		case 1:
			m.Button = event.MouseMiddle
		case 2:
			m.Button = event.MouseRight
		case 3:
			m.Button = event.MouseNone
		}
		switch {
		case btn&32 != 0:
			m.Action = event.MouseMotion
		case press:
			m.Action = event.MousePress
		default:
			m.Action = event.MouseRelease
		}
	}
	return m, consumed, decoded
}

// csiModifier extracts the xterm modifier from "1;5" style params.
func csiModifier(params string) event.Mod {
	fields := strings.Split(params, ";")
	if len(fields) < 2 {
		return 0
	}
	return modFromParam(atoi(fields[1]))
}

// modFromParam maps the xterm modifier parameter (value-1 is a
// bitmask: 1 shift, 2 alt, 4 ctrl).
func modFromParam(p int) event.Mod {
	if p < 2 {
		return 0
	}
	bits := p - 1
	var mod event.Mod
	if bits&1 != 0 {
		mod |= event.ModShift
	}
	if bits&2 != 0 {
		mod |= event.ModAlt
	}
	if bits&4 != 0 {
		mod |= event.ModCtrl
	}
	return mod
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}
