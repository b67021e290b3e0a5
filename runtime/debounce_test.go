package runtime

import (
	"testing"
	"time"
)

func at(ms int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

func TestDebouncerAppliesAfterQuietPeriod(t *testing.T) {
	d := newResizeDebouncer(100*time.Millisecond, 80, 24)

	if act := d.handleResize(100, 30, at(0)); act.kind != resizeShowPlaceholder {
		t.Fatalf("handleResize kind = %v, want resizeShowPlaceholder", act.kind)
	}
	if act := d.tick(at(50)); act.kind != resizeNone {
		t.Errorf("tick(50ms) kind = %v, want resizeNone", act.kind)
	}
	act := d.tick(at(100))
	if act.kind != resizeApply {
		t.Fatalf("tick(100ms) kind = %v, want resizeApply", act.kind)
	}
	if act.width != 100 || act.height != 30 {
		t.Errorf("applied size = %dx%d, want 100x30", act.width, act.height)
	}
}

func TestDebouncerBurstAppliesLatestSizeOnce(t *testing.T) {
	d := newResizeDebouncer(100*time.Millisecond, 80, 24)

	// A drag-resize burst: each notification restarts the window.
	d.handleResize(81, 24, at(0))
	d.handleResize(85, 25, at(30))
	d.handleResize(90, 28, at(60))
	d.handleResize(120, 40, at(90))

	if act := d.tick(at(150)); act.kind != resizeNone {
		t.Fatalf("tick(150ms) kind = %v, want resizeNone (window restarted at 90ms)", act.kind)
	}
	act := d.tick(at(190))
	if act.kind != resizeApply {
		t.Fatalf("tick(190ms) kind = %v, want resizeApply", act.kind)
	}
	if act.width != 120 || act.height != 40 {
		t.Errorf("applied size = %dx%d, want 120x40", act.width, act.height)
	}
	if act.elapsed != 100*time.Millisecond {
		t.Errorf("elapsed = %v, want 100ms", act.elapsed)
	}
	if follow := d.tick(at(300)); follow.kind != resizeNone {
		t.Errorf("tick after apply kind = %v, want resizeNone", follow.kind)
	}
}

func TestDebouncerIgnoresStableSizeWhileIdle(t *testing.T) {
	d := newResizeDebouncer(100*time.Millisecond, 80, 24)

	if act := d.handleResize(80, 24, at(0)); act.kind != resizeNone {
		t.Errorf("handleResize(same size) kind = %v, want resizeNone", act.kind)
	}
	if _, pending := d.timeUntilApply(at(0)); pending {
		t.Error("timeUntilApply pending = true after no-op resize, want false")
	}
}

func TestDebouncerReappliesSameSizeDuringBurst(t *testing.T) {
	d := newResizeDebouncer(100*time.Millisecond, 80, 24)

	// Away and back again: the model still deserves the settled
	// notification because intermediate sizes were shown as
	// placeholder frames.
	d.handleResize(100, 30, at(0))
	if act := d.handleResize(80, 24, at(50)); act.kind != resizeShowPlaceholder {
		t.Fatalf("handleResize during burst kind = %v, want resizeShowPlaceholder", act.kind)
	}
	act := d.tick(at(150))
	if act.kind != resizeApply {
		t.Fatalf("tick kind = %v, want resizeApply", act.kind)
	}
	if act.width != 80 || act.height != 24 {
		t.Errorf("applied size = %dx%d, want 80x24", act.width, act.height)
	}
}

func TestDebouncerTimeUntilApply(t *testing.T) {
	d := newResizeDebouncer(100*time.Millisecond, 80, 24)

	if _, pending := d.timeUntilApply(at(0)); pending {
		t.Fatal("timeUntilApply pending = true while idle, want false")
	}
	d.handleResize(100, 30, at(0))
	if remaining, _ := d.timeUntilApply(at(40)); remaining != 60*time.Millisecond {
		t.Errorf("timeUntilApply(40ms) = %v, want 60ms", remaining)
	}
	if remaining, _ := d.timeUntilApply(at(250)); remaining != 0 {
		t.Errorf("timeUntilApply past deadline = %v, want 0", remaining)
	}
}
