package runtime

import (
	"context"
	"time"

	"github.com/sfncore/frankentui/event"
	"github.com/sfncore/frankentui/render"
)

// Model is the application: opaque state plus the pure functions the
// runtime drives. The runtime owns the model for the life of the
// program and calls every method from the loop goroutine only.
type Model[M any] interface {
	// Init returns the command to execute before the first frame.
	Init() Cmd[M]

	// Update is the single state transition function. It must be
	// total: failures are modeled as messages, not errors.
	Update(msg M) Cmd[M]

	// View renders the current state into the frame. It must not
	// mutate state.
	View(frame *render.Frame)

	// FromEvent converts a raw terminal event into the application's
	// message type.
	FromEvent(ev event.Event) M
}

// Subscriber is implemented by models that declare long-running
// message sources. After every mutation the runtime reconciles the
// returned set against what is running: new IDs start, absent IDs
// stop, persisting IDs are left untouched.
type Subscriber[M any] interface {
	Subscriptions() []Subscription[M]
}

// Subscription is a declaratively managed message source. Run is
// invoked on its own goroutine and must return promptly once ctx is
// canceled; messages are handed to send, which buffers them for the
// loop.
type Subscription[M any] interface {
	// ID identifies the subscription for reconciliation. Two
	// subscriptions with the same ID are the same subscription.
	ID() string
	Run(ctx context.Context, send func(M))
}

// EventSource is the terminal session as the loop sees it: a
// blocking-with-timeout poll plus a non-blocking read.
// terminal.Session satisfies it.
type EventSource interface {
	// Poll blocks until input is available or the timeout elapses.
	Poll(timeout time.Duration) (bool, error)
	// Read returns a buffered event without blocking.
	Read() (event.Event, bool, error)
	// Size returns the terminal dimensions in cells.
	Size() (int, int, error)
	// Close releases the session. Must be idempotent.
	Close() error
}

// Surface is the terminal writer as the loop sees it. render.Writer
// satisfies it. All methods are loop-goroutine only.
type Surface interface {
	// SetSize records new terminal dimensions.
	SetSize(width, height int)
	// UIHeight is the row count frames should be built with.
	UIHeight() int
	// Present writes a frame buffer to the terminal.
	Present(buf *render.Buffer) error
	// WriteLog writes sanitized text to the scrollback log path.
	WriteLog(text string) error
}
