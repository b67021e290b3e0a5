package runtime

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sfncore/frankentui/event"
	"github.com/sfncore/frankentui/render"
	"github.com/sfncore/frankentui/terminal"
)

// taskHandle tracks one worker goroutine. The channel closes when the
// worker returns, panicked or not.
type taskHandle struct {
	done chan struct{}
}

// Program binds a model to a terminal and runs the control loop. All
// of the model's methods execute on the goroutine that called Run;
// worker goroutines and subscriptions feed back into that goroutine
// through channels.
type Program[M any] struct {
	model   Model[M]
	source  EventSource
	surface Surface
	cfg     Config
	log     *zap.Logger

	budget    *render.Budget
	debouncer *resizeDebouncer
	subs      *SubscriptionManager[M]

	running  bool
	dirty    bool
	resizing bool
	width    int
	height   int

	tickRate time.Duration
	lastTick time.Time

	taskResults chan M
	tasks       []taskHandle
	done        chan struct{}

	runErr     error
	ownsSource bool
}

// New attaches model to the process terminal according to cfg. The
// returned program owns the terminal session and releases it when Run
// returns.
func New[M any](model Model[M], cfg Config) (*Program[M], error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	session, err := terminal.New(terminal.Options{
		AltScreen:      cfg.screenMode() == render.ScreenAlt,
		Mouse:          cfg.Mouse,
		BracketedPaste: cfg.BracketedPaste,
		FocusReporting: cfg.FocusReporting,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("terminal session: %w", err)
	}
	writer := render.NewWriter(os.Stdout, cfg.screenMode(), cfg.anchor(), cfg.UIHeight, logger)
	p := newProgram(model, session, writer, cfg, logger)
	p.ownsSource = true
	return p, nil
}

// NewWith attaches model to an explicit event source and surface. The
// caller keeps ownership of both; the program never closes them. This
// is the entry point tests use.
func NewWith[M any](model Model[M], source EventSource, surface Surface, cfg Config) *Program[M] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return newProgram(model, source, surface, cfg, logger)
}

func newProgram[M any](model Model[M], source EventSource, surface Surface, cfg Config, logger *zap.Logger) *Program[M] {
	return &Program[M]{
		model:       model,
		source:      source,
		surface:     surface,
		cfg:         cfg,
		log:         logger,
		budget:      render.NewBudget(cfg.Budget.budgetConfig()),
		subs:        NewSubscriptionManager[M](),
		taskResults: make(chan M, 64),
		done:        make(chan struct{}),
	}
}

// Run executes the control loop until a Quit command or a call to
// Quit stops it. It blocks; run it on its own goroutine if the caller
// has other work.
func (p *Program[M]) Run() error {
	defer p.shutdown()

	w, h, err := p.source.Size()
	if err != nil {
		return fmt.Errorf("initial size: %w", err)
	}
	p.width, p.height = clampDim(w), clampDim(h)
	p.surface.SetSize(p.width, p.height)
	p.debouncer = newResizeDebouncer(p.cfg.resizeDebounce(), p.width, p.height)

	p.running = true
	p.dirty = true
	p.execute(p.model.Init())
	p.reconcileSubs()
	if p.running && p.dirty {
		if err := p.renderFrame(); err != nil {
			return err
		}
		p.dirty = false
	}

	for p.running {
		if _, err := p.source.Poll(p.effectiveTimeout()); err != nil {
			return fmt.Errorf("poll input: %w", err)
		}

		for p.running {
			ev, ok, err := p.source.Read()
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if !ok {
				break
			}
			p.handleEvent(ev)
		}

		for _, msg := range p.subs.Drain() {
			if !p.running {
				break
			}
			p.dispatch(msg)
		}

		p.drainTaskResults()
		p.reapFinishedTasks()

		now := time.Now()
		if act := p.debouncer.tick(now); act.kind == resizeApply {
			p.applyResize(act)
		}
		if p.shouldTick(now) {
			p.lastTick = now
			p.dirty = true
		}

		if p.dirty {
			if err := p.renderFrame(); err != nil {
				return err
			}
			p.dirty = false
		}
	}
	return p.runErr
}

// dispatch runs one message through Update, executes the resulting
// command, and reconciles subscriptions against the new state.
func (p *Program[M]) dispatch(msg M) {
	cmd := p.model.Update(msg)
	p.dirty = true
	p.execute(cmd)
	p.reconcileSubs()
}

// handleEvent routes a terminal event. Resizes detour through the
// debouncer; everything else converts to a message immediately.
func (p *Program[M]) handleEvent(ev event.Event) {
	if r, ok := ev.(event.Resize); ok {
		act := p.debouncer.handleResize(r.Width, r.Height, time.Now())
		if act.kind == resizeShowPlaceholder {
			p.resizing = true
			p.width, p.height = clampDim(r.Width), clampDim(r.Height)
			p.surface.SetSize(p.width, p.height)
			p.dirty = true
		}
		return
	}
	p.dispatch(p.model.FromEvent(ev))
}

// applyResize dispatches the settled size as an ordinary message, so
// the model sees exactly one resize per burst.
func (p *Program[M]) applyResize(act resizeAction) {
	p.resizing = false
	p.width, p.height = clampDim(act.width), clampDim(act.height)
	p.surface.SetSize(p.width, p.height)
	p.log.Debug("resize applied",
		zap.Int("width", p.width),
		zap.Int("height", p.height),
		zap.Duration("settled_after", act.elapsed),
	)
	p.dispatch(p.model.FromEvent(event.Resize{Width: p.width, Height: p.height}))
}

// execute interprets one command. Msg recurses through dispatch, so a
// command cascade runs to completion before the loop resumes.
func (p *Program[M]) execute(cmd Cmd[M]) {
	switch cmd.kind {
	case KindNone:
	case KindQuit:
		p.running = false
	case KindMsg:
		p.dispatch(cmd.msg)
	case KindBatch:
		for _, c := range cmd.cmds {
			p.execute(c)
		}
	case KindSequence:
		// The running flag is checked after each member, so a member
		// always executes before a preceding Quit can cut the chain.
		for _, c := range cmd.cmds {
			p.execute(c)
			if !p.running {
				break
			}
		}
	case KindTick:
		p.tickRate = cmd.dur
		p.lastTick = time.Now()
	case KindLog:
		text := render.Sanitize(cmd.text)
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if err := p.surface.WriteLog(text); err != nil {
			// The log path is synchronous writer I/O; failing it ends
			// the run like any present failure.
			p.runErr = fmt.Errorf("write log: %w", err)
			p.running = false
		}
	case KindTask:
		p.spawnTask(cmd.fn)
	}
}

// spawnTask runs fn on its own goroutine. A panic in fn is contained
// to that goroutine: the loop keeps running and no message is
// delivered.
func (p *Program[M]) spawnTask(fn func() M) {
	handle := taskHandle{done: make(chan struct{})}
	p.tasks = append(p.tasks, handle)
	go func() {
		defer close(handle.done)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("task panicked", zap.Any("panic", r))
			}
		}()
		msg := fn()
		select {
		case p.taskResults <- msg:
		case <-p.done:
			// Shutdown already happened; the result is dropped.
		}
	}()
}

func (p *Program[M]) drainTaskResults() {
	for p.running {
		select {
		case msg := <-p.taskResults:
			p.dispatch(msg)
		default:
			return
		}
	}
}

// reapFinishedTasks drops handles of workers that have returned. It
// never blocks; a still-running worker just stays tracked.
func (p *Program[M]) reapFinishedTasks() {
	alive := p.tasks[:0]
	for _, h := range p.tasks {
		select {
		case <-h.done:
		default:
			alive = append(alive, h)
		}
	}
	p.tasks = alive
}

// renderFrame produces at most one frame under the budget's control.
func (p *Program[M]) renderFrame() error {
	p.budget.NextFrame()

	frame := render.NewFrame(p.width, p.surface.UIHeight())
	frame.SetDegradation(p.budget.Degradation())

	if p.resizing {
		// A burst is in flight; drawing the real view at every
		// intermediate size wastes the budget for nothing.
		drawPlaceholder(frame)
		if err := p.surface.Present(frame.Buffer()); err != nil {
			return fmt.Errorf("present placeholder: %w", err)
		}
		return nil
	}

	if p.budget.Exhausted() {
		p.log.Debug("frame skipped", zap.Duration("elapsed", p.budget.Elapsed()))
		return nil
	}

	start := time.Now()
	p.model.View(frame)
	viewTime := time.Since(start)

	if p.budget.ShouldDegrade(viewTime) {
		p.budget.Degrade()
		p.log.Info("render degraded",
			zap.Stringer("tier", p.budget.Degradation()),
			zap.Duration("view_time", viewTime),
		)
	}

	if !p.budget.Exhausted() {
		if err := p.surface.Present(frame.Buffer()); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
	}
	return nil
}

// drawPlaceholder renders the cheap frame shown mid-resize.
func drawPlaceholder(frame *render.Frame) {
	const text = "Resizing..."
	x := (frame.Width() - len(text)) / 2
	if x < 0 {
		x = 0
	}
	frame.SetString(x, frame.Height()/2, text, render.Style{Faint: true})
}

// effectiveTimeout bounds the poll so the loop wakes in time for the
// next tick and any pending resize apply.
func (p *Program[M]) effectiveTimeout() time.Duration {
	timeout := p.cfg.pollTimeout()
	now := time.Now()
	if p.tickRate > 0 {
		remaining := p.tickRate - now.Sub(p.lastTick)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	if remaining, ok := p.debouncer.timeUntilApply(now); ok && remaining < timeout {
		timeout = remaining
	}
	return timeout
}

func (p *Program[M]) shouldTick(now time.Time) bool {
	return p.tickRate > 0 && now.Sub(p.lastTick) >= p.tickRate
}

func (p *Program[M]) reconcileSubs() {
	if sub, ok := any(p.model).(Subscriber[M]); ok {
		p.subs.Reconcile(sub.Subscriptions())
	}
}

func (p *Program[M]) shutdown() {
	p.running = false
	p.subs.StopAll()
	close(p.done)
	p.reapFinishedTasks()
	if p.ownsSource {
		if err := p.source.Close(); err != nil {
			p.log.Warn("session close failed", zap.Error(err))
		}
	}
	p.log.Debug("program stopped", zap.Int("tasks_outstanding", len(p.tasks)))
}

// Model returns the application model. Loop goroutine only.
func (p *Program[M]) Model() Model[M] { return p.model }

// Running reports whether the loop is still executing.
func (p *Program[M]) Running() bool { return p.running }

// Quit stops the loop after the current iteration. Loop goroutine
// only; from other goroutines send a message that maps to a Quit
// command instead.
func (p *Program[M]) Quit() { p.running = false }

// RequestRedraw marks the UI dirty without going through Update.
func (p *Program[M]) RequestRedraw() { p.dirty = true }

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
