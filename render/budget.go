package render

import "time"

// Degradation is the visual fidelity tier a frame renders at. Tiers
// only ever step one level at a time.
type Degradation int

const (
	// DegradationFull renders everything.
	DegradationFull Degradation = iota
	// DegradationSimpleBorders swaps decorated borders for ASCII.
	DegradationSimpleBorders
	// DegradationMonochrome drops colors and effects.
	DegradationMonochrome
	// DegradationMinimal renders bare content only.
	DegradationMinimal
)

// String returns the tier name for logs.
func (d Degradation) String() string {
	switch d {
	case DegradationFull:
		return "full"
	case DegradationSimpleBorders:
		return "simple-borders"
	case DegradationMonochrome:
		return "monochrome"
	case DegradationMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// PhaseBudgets splits the frame allowance between building the frame
// (view) and writing it to the terminal.
type PhaseBudgets struct {
	Render  time.Duration
	Present time.Duration
}

// BudgetConfig configures the frame budget.
type BudgetConfig struct {
	// Total is the per-frame time allowance. 16ms targets 60fps.
	Total time.Duration
	// RenderFraction is the share of Total granted to the render
	// phase; the remainder goes to present.
	RenderFraction float64
	// Window is how many recent frames the degrade/upgrade decisions
	// look at.
	Window int
	// DegradeAfter degrades one tier once this many frames in the
	// window overran their render budget.
	DegradeAfter int
	// UpgradeAfter upgrades one tier after this many consecutive
	// clean frames.
	UpgradeAfter int
}

// DefaultBudgetConfig returns the 60fps defaults.
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		Total:          16 * time.Millisecond,
		RenderFraction: 0.6,
		Window:         30,
		DegradeAfter:   5,
		UpgradeAfter:   60,
	}
}

// Budget tracks per-frame time spending and owns the degradation
// tier. The runtime consults it once per render: NextFrame, then
// Exhausted before each phase, then ShouldDegrade with the measured
// render time.
//
// Budget is not safe for concurrent use; it belongs to the loop
// goroutine.
type Budget struct {
	cfg        BudgetConfig
	frameStart time.Time
	tier       Degradation
	overruns   []bool
	overrunIdx int
	cleanRun   int
	now        func() time.Time
}

// NewBudget builds a budget from cfg, filling zero fields from the
// defaults.
func NewBudget(cfg BudgetConfig) *Budget {
	def := DefaultBudgetConfig()
	if cfg.Total <= 0 {
		cfg.Total = def.Total
	}
	if cfg.RenderFraction <= 0 || cfg.RenderFraction >= 1 {
		cfg.RenderFraction = def.RenderFraction
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.DegradeAfter <= 0 {
		cfg.DegradeAfter = def.DegradeAfter
	}
	if cfg.UpgradeAfter <= 0 {
		cfg.UpgradeAfter = def.UpgradeAfter
	}
	return &Budget{
		cfg:      cfg,
		overruns: make([]bool, cfg.Window),
		now:      time.Now,
	}
}

// NextFrame starts a new frame's accounting and, after a long enough
// run of clean frames, upgrades the tier one step.
func (b *Budget) NextFrame() {
	b.frameStart = b.now()
	if b.tier > DegradationFull && b.cleanRun >= b.cfg.UpgradeAfter {
		b.tier--
		b.cleanRun = 0
	}
}

// Exhausted reports whether the current frame has already spent its
// full allowance.
func (b *Budget) Exhausted() bool {
	return b.Elapsed() >= b.cfg.Total
}

// Elapsed returns time spent in the current frame so far.
func (b *Budget) Elapsed() time.Duration {
	if b.frameStart.IsZero() {
		return 0
	}
	return b.now().Sub(b.frameStart)
}

// PhaseBudgets returns the render/present split of the allowance.
func (b *Budget) PhaseBudgets() PhaseBudgets {
	render := time.Duration(float64(b.cfg.Total) * b.cfg.RenderFraction)
	return PhaseBudgets{Render: render, Present: b.cfg.Total - render}
}

// ShouldDegrade records the measured render time against its phase
// budget and reports whether overruns inside the window have reached
// the degrade threshold.
func (b *Budget) ShouldDegrade(measured time.Duration) bool {
	over := measured > b.PhaseBudgets().Render
	b.overruns[b.overrunIdx] = over
	b.overrunIdx = (b.overrunIdx + 1) % len(b.overruns)
	if over {
		b.cleanRun = 0
	} else {
		b.cleanRun++
	}
	if !over {
		return false
	}
	count := 0
	for _, o := range b.overruns {
		if o {
			count++
		}
	}
	return count >= b.cfg.DegradeAfter && b.tier < DegradationMinimal
}

// Degrade steps the tier down one level.
func (b *Budget) Degrade() {
	if b.tier < DegradationMinimal {
		b.tier++
		// A fresh tier gets a clean slate so it is judged on its own
		// frames.
		for i := range b.overruns {
			b.overruns[i] = false
		}
		b.cleanRun = 0
	}
}

// Degradation returns the active tier.
func (b *Budget) Degradation() Degradation {
	return b.tier
}
