package event

// Event is a raw terminal input event. It is a closed set: only the
// types in this package implement it.
type Event interface {
	isEvent()
}

// Resize reports a change of the terminal window size in cells.
type Resize struct {
	Width  int
	Height int
}

// Paste is the content of a bracketed paste, delivered as a single
// event rather than a stream of key presses.
type Paste struct {
	Text string
}

// Focus reports the terminal gaining or losing input focus. Only
// delivered when focus reporting is enabled on the session.
type Focus struct {
	Gained bool
}

// MouseButton identifies the button involved in a mouse event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction describes what the mouse did.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// Mouse is a decoded SGR mouse report. X and Y are zero-based cell
// coordinates.
type Mouse struct {
	X      int
	Y      int
	Button MouseButton
	Action MouseAction
	Mod    Mod
}

func (Resize) isEvent() {}
func (Paste) isEvent()  {}
func (Focus) isEvent()  {}
func (Mouse) isEvent()  {}
func (Key) isEvent()    {}
