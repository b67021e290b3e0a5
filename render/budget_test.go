package render

import (
	"testing"
	"time"
)

// fakeClock lets budget tests control time.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBudget(cfg BudgetConfig) (*Budget, *fakeClock) {
	b := NewBudget(cfg)
	clock := &fakeClock{t: time.Unix(0, 0)}
	b.now = clock.now
	return b, clock
}

func TestBudgetExhausted(t *testing.T) {
	b, clock := newTestBudget(BudgetConfig{Total: 16 * time.Millisecond})

	b.NextFrame()
	if b.Exhausted() {
		t.Error("fresh frame should not be exhausted")
	}

	clock.advance(20 * time.Millisecond)
	if !b.Exhausted() {
		t.Error("frame past its allowance should be exhausted")
	}

	b.NextFrame()
	if b.Exhausted() {
		t.Error("NextFrame() should reset the allowance")
	}
}

func TestBudgetPhaseBudgets(t *testing.T) {
	b, _ := newTestBudget(BudgetConfig{
		Total:          10 * time.Millisecond,
		RenderFraction: 0.6,
	})
	pb := b.PhaseBudgets()
	if pb.Render != 6*time.Millisecond {
		t.Errorf("PhaseBudgets().Render = %v, want 6ms", pb.Render)
	}
	if pb.Present != 4*time.Millisecond {
		t.Errorf("PhaseBudgets().Present = %v, want 4ms", pb.Present)
	}
}

func TestBudgetDegradesAfterSustainedOverruns(t *testing.T) {
	b, _ := newTestBudget(BudgetConfig{
		Total:          10 * time.Millisecond,
		RenderFraction: 0.5,
		Window:         10,
		DegradeAfter:   3,
	})

	over := 8 * time.Millisecond // render budget is 5ms

	// Two overruns are below the threshold.
	for i := 0; i < 2; i++ {
		b.NextFrame()
		if b.ShouldDegrade(over) {
			t.Fatalf("ShouldDegrade() = true after %d overruns, want false", i+1)
		}
	}

	b.NextFrame()
	if !b.ShouldDegrade(over) {
		t.Fatal("ShouldDegrade() = false after 3 overruns in window, want true")
	}

	b.Degrade()
	if b.Degradation() != DegradationSimpleBorders {
		t.Errorf("Degradation() = %v, want %v", b.Degradation(), DegradationSimpleBorders)
	}
}

func TestBudgetUpgradesAfterCleanRun(t *testing.T) {
	b, _ := newTestBudget(BudgetConfig{
		Total:          10 * time.Millisecond,
		RenderFraction: 0.5,
		Window:         5,
		DegradeAfter:   1,
		UpgradeAfter:   3,
	})

	b.NextFrame()
	if !b.ShouldDegrade(9 * time.Millisecond) {
		t.Fatal("single overrun should degrade at threshold 1")
	}
	b.Degrade()

	// Three clean frames, then the next frame upgrades.
	for i := 0; i < 3; i++ {
		b.NextFrame()
		b.ShouldDegrade(1 * time.Millisecond)
	}
	b.NextFrame()
	if b.Degradation() != DegradationFull {
		t.Errorf("Degradation() = %v after clean run, want %v", b.Degradation(), DegradationFull)
	}
}

func TestBudgetNeverDegradesPastMinimal(t *testing.T) {
	b, _ := newTestBudget(BudgetConfig{Total: time.Millisecond})
	for i := 0; i < 10; i++ {
		b.Degrade()
	}
	if b.Degradation() != DegradationMinimal {
		t.Errorf("Degradation() = %v, want %v", b.Degradation(), DegradationMinimal)
	}
}

func TestDegradationString(t *testing.T) {
	if DegradationFull.String() != "full" {
		t.Errorf("DegradationFull.String() = %v, want full", DegradationFull.String())
	}
	if DegradationMinimal.String() != "minimal" {
		t.Errorf("DegradationMinimal.String() = %v, want minimal", DegradationMinimal.String())
	}
}
