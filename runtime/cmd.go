package runtime

import (
	"fmt"
	"time"
)

// CmdKind discriminates the command variants.
type CmdKind int

const (
	// KindNone is the no-op command.
	KindNone CmdKind = iota
	// KindQuit stops the loop after the current command finishes.
	KindQuit
	// KindBatch runs every member command; order is not part of the
	// contract (execution is currently sequential).
	KindBatch
	// KindSequence runs members strictly in order, stopping early
	// once a member quits.
	KindSequence
	// KindMsg dispatches a message back through Update.
	KindMsg
	// KindTick arms or re-arms the periodic wake timer.
	KindTick
	// KindLog appends a sanitized line to the scrollback log.
	KindLog
	// KindTask runs a closure on a worker goroutine.
	KindTask
)

// Cmd describes one deferred effect for the runtime to interpret.
// Commands are inert values until the executor consumes them; each
// command is consumed exactly once.
//
// The zero value is the no-op command.
type Cmd[M any] struct {
	kind CmdKind
	cmds []Cmd[M]
	msg  M
	dur  time.Duration
	text string
	fn   func() M
}

// None returns the no-op command.
func None[M any]() Cmd[M] {
	return Cmd[M]{}
}

// Quit returns the command that stops the program.
func Quit[M any]() Cmd[M] {
	return Cmd[M]{kind: KindQuit}
}

// Msg returns a command that dispatches m through Update, the
// mechanism by which one event cascades into further effects.
func Msg[M any](m M) Cmd[M] {
	return Cmd[M]{kind: KindMsg, msg: m}
}

// Batch bundles commands whose relative order does not matter. An
// empty batch collapses to None and a single-element batch to its
// only member.
func Batch[M any](cmds ...Cmd[M]) Cmd[M] {
	switch len(cmds) {
	case 0:
		return None[M]()
	case 1:
		return cmds[0]
	}
	return Cmd[M]{kind: KindBatch, cmds: cmds}
}

// Sequence bundles commands that must run in order. Execution stops
// after a member quits the program. Normalization matches Batch.
func Sequence[M any](cmds ...Cmd[M]) Cmd[M] {
	switch len(cmds) {
	case 0:
		return None[M]()
	case 1:
		return cmds[0]
	}
	return Cmd[M]{kind: KindSequence, cmds: cmds}
}

// Tick arms the periodic wake timer with interval d, replacing any
// previous interval. The first wake happens d from now; arming never
// fires immediately.
func Tick[M any](d time.Duration) Cmd[M] {
	return Cmd[M]{kind: KindTick, dur: d}
}

// Log appends text to the terminal scrollback through the writer's
// log path. The text is sanitized and newline-terminated before it
// reaches the terminal; it never draws over the UI region.
func Log[M any](text string) Cmd[M] {
	return Cmd[M]{kind: KindLog, text: text}
}

// Task runs fn on a fresh worker goroutine. Its return value comes
// back to Update as a message on the loop goroutine. There is no way
// to cancel a task once spawned; after shutdown its result is
// silently discarded.
func Task[M any](fn func() M) Cmd[M] {
	return Cmd[M]{kind: KindTask, fn: fn}
}

// Kind reports the command variant, allowing commands to be
// inspected without executing them.
func (c Cmd[M]) Kind() CmdKind {
	return c.kind
}

// String renders the command for debugging.
func (c Cmd[M]) String() string {
	switch c.kind {
	case KindNone:
		return "None"
	case KindQuit:
		return "Quit"
	case KindBatch:
		return fmt.Sprintf("Batch(%v)", c.cmds)
	case KindSequence:
		return fmt.Sprintf("Sequence(%v)", c.cmds)
	case KindMsg:
		return fmt.Sprintf("Msg(%v)", c.msg)
	case KindTick:
		return fmt.Sprintf("Tick(%v)", c.dur)
	case KindLog:
		return fmt.Sprintf("Log(%q)", c.text)
	case KindTask:
		return "Task(...)"
	default:
		return "Unknown"
	}
}
