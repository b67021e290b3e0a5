package runtime

import "time"

// resizeActionKind is what the debouncer asks the loop to do.
type resizeActionKind int

const (
	// resizeNone: nothing to do.
	resizeNone resizeActionKind = iota
	// resizeShowPlaceholder: a burst is in flight; render the cheap
	// placeholder instead of the real view.
	resizeShowPlaceholder
	// resizeApply: the quiet period elapsed; dispatch the coalesced
	// size.
	resizeApply
)

type resizeAction struct {
	kind    resizeActionKind
	width   int
	height  int
	elapsed time.Duration
}

// resizeDebouncer coalesces bursts of resize notifications into one
// applied resize after a quiet period. It is a trailing-edge
// detector: every notification during a burst overwrites the pending
// size and restarts the window, so a continuous drag defers
// indefinitely and only the settled size applies.
type resizeDebouncer struct {
	window     time.Duration
	lastResize time.Time
	pendingW   int
	pendingH   int
	pending    bool
	appliedW   int
	appliedH   int
}

func newResizeDebouncer(window time.Duration, width, height int) *resizeDebouncer {
	return &resizeDebouncer{
		window:   window,
		appliedW: width,
		appliedH: height,
	}
}

// handleResize records a notification. Resizing to the size already
// applied while idle is a no-op; anything else (re)starts the quiet
// window.
func (d *resizeDebouncer) handleResize(width, height int, now time.Time) resizeAction {
	if !d.pending && width == d.appliedW && height == d.appliedH {
		return resizeAction{kind: resizeNone}
	}
	d.pendingW, d.pendingH = width, height
	d.pending = true
	d.lastResize = now
	return resizeAction{kind: resizeShowPlaceholder}
}

// tick checks whether the quiet window has elapsed and, if so,
// transitions back to idle and reports the size to apply.
func (d *resizeDebouncer) tick(now time.Time) resizeAction {
	if !d.pending {
		return resizeAction{kind: resizeNone}
	}
	elapsed := now.Sub(d.lastResize)
	if elapsed < d.window {
		return resizeAction{kind: resizeNone}
	}
	d.pending = false
	d.appliedW, d.appliedH = d.pendingW, d.pendingH
	return resizeAction{
		kind:    resizeApply,
		width:   d.appliedW,
		height:  d.appliedH,
		elapsed: elapsed,
	}
}

// timeUntilApply returns how long until the pending resize applies,
// saturating at zero. The second result is false while idle; the
// loop uses this to bound its poll timeout.
func (d *resizeDebouncer) timeUntilApply(now time.Time) (time.Duration, bool) {
	if !d.pending {
		return 0, false
	}
	remaining := d.window - now.Sub(d.lastResize)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
