// Package event defines the raw terminal input events consumed by the
// runtime.
//
// Events are produced by the terminal session (see the terminal
// package) and converted into application messages by the model's
// FromEvent method before they reach Update. The runtime itself only
// inspects Resize events, which it routes through the resize
// debouncer; every other event passes through opaquely.
//
// The set of events mirrors what a terminal can actually report:
//
//   - Key: a key press, decoded from UTF-8 and escape sequences
//   - Mouse: an SGR mouse report (press, release, motion, wheel)
//   - Resize: a window size change
//   - Paste: a bracketed paste, delivered as one event
//   - Focus: terminal focus gained or lost
//
// Key provides a String form ("q", "ctrl+c", "alt+enter") intended
// for key-binding comparison in application update functions.
package event
