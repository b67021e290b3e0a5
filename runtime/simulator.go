package runtime

import (
	"strings"
	"time"

	"github.com/sfncore/frankentui/event"
	"github.com/sfncore/frankentui/render"
)

// Simulator drives a model without a terminal: every command,
// including tasks, executes synchronously on the caller's goroutine,
// so a test observes a deterministic trace. Frames are rendered into
// in-memory buffers on demand.
//
// Subscriptions are not started; their messages are injected with
// Send instead.
type Simulator[M any] struct {
	model   Model[M]
	running bool
	logs    []string
	ticks   []time.Duration
}

// NewSimulator wraps model and executes its Init command.
func NewSimulator[M any](model Model[M]) *Simulator[M] {
	s := &Simulator[M]{model: model, running: true}
	s.execute(model.Init())
	return s
}

// Send dispatches one message through Update and executes the
// resulting command cascade to completion. Messages sent after the
// model quit are ignored.
func (s *Simulator[M]) Send(msg M) {
	if !s.running {
		return
	}
	s.dispatch(msg)
}

// SendEvent converts a terminal event through FromEvent and sends it.
func (s *Simulator[M]) SendEvent(ev event.Event) {
	if !s.running {
		return
	}
	s.Send(s.model.FromEvent(ev))
}

// dispatch is the internal path for messages produced by commands.
// Unlike Send it does not consult the running flag: a Msg member of
// an in-flight command chain still reaches Update after a Quit.
func (s *Simulator[M]) dispatch(msg M) {
	s.execute(s.model.Update(msg))
}

func (s *Simulator[M]) execute(cmd Cmd[M]) {
	switch cmd.kind {
	case KindNone:
	case KindQuit:
		s.running = false
	case KindMsg:
		s.dispatch(cmd.msg)
	case KindBatch:
		for _, c := range cmd.cmds {
			s.execute(c)
		}
	case KindSequence:
		for _, c := range cmd.cmds {
			s.execute(c)
			if !s.running {
				break
			}
		}
	case KindTick:
		s.ticks = append(s.ticks, cmd.dur)
	case KindLog:
		text := render.Sanitize(cmd.text)
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		s.logs = append(s.logs, text)
	case KindTask:
		// Inline execution keeps the trace deterministic. The result
		// is dropped when the model already quit, matching the loop's
		// post-shutdown discard.
		msg := cmd.fn()
		if s.running {
			s.dispatch(msg)
		}
	}
}

// Running reports whether the model has quit.
func (s *Simulator[M]) Running() bool { return s.running }

// Model returns the model under test.
func (s *Simulator[M]) Model() Model[M] { return s.model }

// Logs returns every line the model logged, sanitized and
// newline-terminated, in execution order.
func (s *Simulator[M]) Logs() []string { return s.logs }

// Ticks returns the intervals the model armed, in execution order.
func (s *Simulator[M]) Ticks() []time.Duration { return s.ticks }

// CaptureFrame renders the current state into a fresh buffer of the
// given size.
func (s *Simulator[M]) CaptureFrame(width, height int) *render.Buffer {
	frame := render.NewFrame(width, height)
	s.model.View(frame)
	return frame.Buffer()
}
