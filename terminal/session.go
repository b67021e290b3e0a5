package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/sfncore/frankentui/event"
)

// Options configures which terminal state a session acquires.
type Options struct {
	// Input is the event source, os.Stdin when nil.
	Input io.Reader
	// Output receives mode-switch sequences, os.Stdout when nil.
	Output io.Writer
	// AltScreen switches to the alternate screen buffer.
	AltScreen bool
	// Mouse enables button and drag reporting in SGR encoding.
	Mouse bool
	// BracketedPaste makes pastes arrive as single events.
	BracketedPaste bool
	// FocusReporting delivers focus gained/lost events.
	FocusReporting bool
	// Logger receives session telemetry; nop when nil.
	Logger *zap.Logger
}

// Session holds the acquired terminal state and the decoded input
// queue. It is created with New and must be released with Close;
// Close runs the teardown exactly once no matter how many exit paths
// reach it.
//
// Poll and Read must be called from a single goroutine.
type Session struct {
	opts   Options
	out    io.Writer
	log    *zap.Logger
	reader cancelreader.CancelReader

	events  chan event.Event
	next    event.Event
	hasNext bool

	rawState  *term.State
	inputFD   int
	isTTY     bool
	winchStop func()

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// New acquires the terminal: raw mode when the input is a TTY, then
// the requested reporting modes, then starts the decode goroutine.
// On any failure the state already acquired is released before the
// error returns.
func New(opts Options) (*Session, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		opts:    opts,
		out:     opts.Output,
		log:     opts.Logger,
		events:  make(chan event.Event, 256),
		closed:  make(chan struct{}),
		inputFD: -1,
	}

	if f, ok := opts.Input.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				return nil, fmt.Errorf("enter raw mode: %w", err)
			}
			s.rawState = state
			s.inputFD = fd
			s.isTTY = true
		}
	}

	reader, err := cancelreader.NewReader(opts.Input)
	if err != nil {
		s.restoreRaw()
		return nil, fmt.Errorf("input reader: %w", err)
	}
	s.reader = reader

	s.enterModes()
	s.winchStop = s.watchResize()

	s.wg.Add(1)
	go s.decodeLoop()

	s.log.Debug("terminal session acquired",
		zap.Bool("tty", s.isTTY),
		zap.Bool("alt_screen", opts.AltScreen),
		zap.Bool("mouse", opts.Mouse),
	)
	return s, nil
}

// enterModes emits the escape sequences for the requested modes.
func (s *Session) enterModes() {
	if s.opts.AltScreen {
		io.WriteString(s.out, "\x1b[?1049h\x1b[2J\x1b[H")
	}
	io.WriteString(s.out, "\x1b[?25l")
	if s.opts.Mouse {
		io.WriteString(s.out, "\x1b[?1002h\x1b[?1006h")
	}
	if s.opts.BracketedPaste {
		io.WriteString(s.out, "\x1b[?2004h")
	}
	if s.opts.FocusReporting {
		io.WriteString(s.out, "\x1b[?1004h")
	}
}

// exitModes reverses enterModes in the opposite order.
func (s *Session) exitModes() {
	if s.opts.FocusReporting {
		io.WriteString(s.out, "\x1b[?1004l")
	}
	if s.opts.BracketedPaste {
		io.WriteString(s.out, "\x1b[?2004l")
	}
	if s.opts.Mouse {
		io.WriteString(s.out, "\x1b[?1006l\x1b[?1002l")
	}
	io.WriteString(s.out, "\x1b[?25h")
	if s.opts.AltScreen {
		io.WriteString(s.out, "\x1b[?1049l")
	}
}

func (s *Session) restoreRaw() {
	if s.rawState != nil {
		_ = term.Restore(s.inputFD, s.rawState)
		s.rawState = nil
	}
}

// decodeLoop reads raw bytes and feeds decoded events into the
// queue. It exits when the reader is canceled or hits EOF.
func (s *Session) decodeLoop() {
	defer s.wg.Done()

	var pending []byte
	chunk := make([]byte, 4096)
	for {
		n, err := s.reader.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)
			pending = s.drainPending(pending)
		}
		if err != nil {
			if err != io.EOF && !isCanceled(err) {
				s.log.Debug("input read failed", zap.Error(err))
			}
			return
		}
	}
}

func isCanceled(err error) bool {
	return err == cancelreader.ErrCanceled
}

// drainPending decodes as many events as the buffer holds and
// returns the undecoded tail.
func (s *Session) drainPending(buf []byte) []byte {
	for len(buf) > 0 {
		ev, n, res := decode(buf)
		switch res {
		case needMore:
			return buf
		case skipped:
			buf = buf[n:]
		case decoded:
			buf = buf[n:]
			select {
			case s.events <- ev:
			case <-s.closed:
				return nil
			}
		}
	}
	return buf[:0]
}

// Poll blocks until an event is available or the timeout elapses.
// It reports availability without consuming; a true result means the
// next Read returns an event.
func (s *Session) Poll(timeout time.Duration) (bool, error) {
	if s.hasNext {
		return true, nil
	}
	if timeout <= 0 {
		select {
		case ev := <-s.events:
			s.next, s.hasNext = ev, true
			return true, nil
		default:
			return false, nil
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-s.events:
		s.next, s.hasNext = ev, true
		return true, nil
	case <-timer.C:
		return false, nil
	case <-s.closed:
		return false, nil
	}
}

// Read returns the next buffered event without blocking.
func (s *Session) Read() (event.Event, bool, error) {
	if s.hasNext {
		ev := s.next
		s.next, s.hasNext = nil, false
		return ev, true, nil
	}
	select {
	case ev := <-s.events:
		return ev, true, nil
	default:
		return nil, false, nil
	}
}

// Size returns the terminal dimensions in cells, defaulting to 80×24
// when the input is not a terminal.
func (s *Session) Size() (int, int, error) {
	if !s.isTTY {
		return 80, 24, nil
	}
	w, h, err := term.GetSize(s.inputFD)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return w, h, nil
}

// inject queues an event from outside the decode path (resize
// delivery). Drops the event if the session is closed.
func (s *Session) inject(ev event.Event) {
	select {
	case s.events <- ev:
	case <-s.closed:
	}
}

// Close releases every piece of acquired terminal state in reverse
// acquisition order. It is idempotent: the second and later calls
// are no-ops.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.winchStop != nil {
			s.winchStop()
		}
		if !s.reader.Cancel() {
			// The fallback reader cannot interrupt a blocked Read;
			// closing it lets the decode goroutine exit on its own.
			_ = s.reader.Close()
		}
		s.wg.Wait()
		s.exitModes()
		s.restoreRaw()
		s.log.Debug("terminal session released")
	})
	return nil
}
