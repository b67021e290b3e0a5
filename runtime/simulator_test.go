package runtime

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sfncore/frankentui/event"
	"github.com/sfncore/frankentui/render"
)

type simMsg int

// simModel records every message it sees and answers each with a
// scripted command, which lets tests assert exact execution traces.
type simModel struct {
	trace []simMsg
	cmds  map[simMsg]Cmd[simMsg]
	init  Cmd[simMsg]
}

func (m *simModel) Init() Cmd[simMsg] { return m.init }

func (m *simModel) Update(msg simMsg) Cmd[simMsg] {
	m.trace = append(m.trace, msg)
	if c, ok := m.cmds[msg]; ok {
		return c
	}
	return None[simMsg]()
}

func (m *simModel) View(frame *render.Frame) {
	frame.SetString(0, 0, fmt.Sprintf("seen %d", len(m.trace)), render.Style{})
}

func (m *simModel) FromEvent(ev event.Event) simMsg {
	switch e := ev.(type) {
	case event.Key:
		return simMsg(e.Rune)
	case event.Resize:
		return simMsg(1000 + e.Width)
	}
	return 0
}

func TestSimulatorInitRunsBeforeFirstSend(t *testing.T) {
	model := &simModel{init: Msg(simMsg(99))}
	sim := NewSimulator[simMsg](model)
	sim.Send(1)

	want := []simMsg{99, 1}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorSequenceRunsInOrder(t *testing.T) {
	model := &simModel{cmds: map[simMsg]Cmd[simMsg]{
		0: Sequence(Msg(simMsg(1)), Msg(simMsg(2)), Msg(simMsg(3))),
	}}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)

	want := []simMsg{0, 1, 2, 3}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorSequenceStopsAfterQuit(t *testing.T) {
	model := &simModel{
		cmds: map[simMsg]Cmd[simMsg]{
			0: Sequence(Msg(simMsg(1)), Quit[simMsg](), Msg(simMsg(2))),
		},
	}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)

	want := []simMsg{0, 1}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
	if sim.Running() {
		t.Error("Running() = true after Quit, want false")
	}
}

func TestSimulatorSequenceMemberRunsAfterQuit(t *testing.T) {
	// A sequence reached with the running flag already down still
	// executes its first member; the flag is checked after each one.
	model := &simModel{cmds: map[simMsg]Cmd[simMsg]{
		0: Batch(Quit[simMsg](), Sequence(Msg(simMsg(1)), Msg(simMsg(2)))),
	}}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)

	want := []simMsg{0, 1}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
	if sim.Running() {
		t.Error("Running() = true after Quit, want false")
	}
}

func TestSimulatorBatchRunsEveryMember(t *testing.T) {
	model := &simModel{cmds: map[simMsg]Cmd[simMsg]{
		0: Batch(Msg(simMsg(1)), Msg(simMsg(2)), Msg(simMsg(3))),
	}}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)

	if len(model.trace) != 4 {
		t.Errorf("trace length = %d, want 4 (%v)", len(model.trace), model.trace)
	}
}

func TestSimulatorMsgCascade(t *testing.T) {
	model := &simModel{cmds: map[simMsg]Cmd[simMsg]{
		0: Msg(simMsg(1)),
		1: Msg(simMsg(2)),
		2: Msg(simMsg(3)),
		3: Msg(simMsg(4)),
	}}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)

	want := []simMsg{0, 1, 2, 3, 4}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorTaskRunsInline(t *testing.T) {
	model := &simModel{
		init: Task(func() simMsg { return 7 }),
	}
	NewSimulator[simMsg](model)

	want := []simMsg{7}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorIgnoresSendAfterQuit(t *testing.T) {
	model := &simModel{cmds: map[simMsg]Cmd[simMsg]{0: Quit[simMsg]()}}
	sim := NewSimulator[simMsg](model)
	sim.Send(0)
	sim.Send(1)

	want := []simMsg{0}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorLogsSanitizedAndTerminated(t *testing.T) {
	model := &simModel{init: Log[simMsg]("a\x1b[31mb\x07c")}
	sim := NewSimulator[simMsg](model)

	logs := sim.Logs()
	if len(logs) != 1 {
		t.Fatalf("len(Logs()) = %d, want 1", len(logs))
	}
	if logs[0] != "abc\n" {
		t.Errorf("Logs()[0] = %q, want %q", logs[0], "abc\n")
	}
}

func TestSimulatorRecordsTicks(t *testing.T) {
	model := &simModel{init: Tick[simMsg](50 * time.Millisecond)}
	sim := NewSimulator[simMsg](model)

	ticks := sim.Ticks()
	if len(ticks) != 1 || ticks[0] != 50*time.Millisecond {
		t.Errorf("Ticks() = %v, want [50ms]", ticks)
	}
}

func TestSimulatorSendEvent(t *testing.T) {
	model := &simModel{}
	sim := NewSimulator[simMsg](model)
	sim.SendEvent(event.Key{Kind: event.KeyRune, Rune: 'x'})

	want := []simMsg{simMsg('x')}
	if !reflect.DeepEqual(model.trace, want) {
		t.Errorf("trace = %v, want %v", model.trace, want)
	}
}

func TestSimulatorCaptureFrame(t *testing.T) {
	model := &simModel{}
	sim := NewSimulator[simMsg](model)
	sim.Send(1)
	sim.Send(2)

	buf := sim.CaptureFrame(20, 3)
	if got := rowText(buf, 0); got != "seen 2" {
		t.Errorf("row 0 = %q, want %q", got, "seen 2")
	}
}

func TestSimulatorDeterministicTrace(t *testing.T) {
	run := func() []simMsg {
		model := &simModel{
			init: Batch(Msg(simMsg(1)), Task(func() simMsg { return 2 })),
			cmds: map[simMsg]Cmd[simMsg]{
				2: Sequence(Msg(simMsg(3)), Msg(simMsg(4))),
			},
		}
		sim := NewSimulator[simMsg](model)
		sim.Send(5)
		return model.trace
	}

	first := run()
	for i := 0; i < 10; i++ {
		if got := run(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d trace = %v, want %v", i, got, first)
		}
	}
}

// rowText flattens a buffer row to its text with trailing blanks
// trimmed.
func rowText(buf *render.Buffer, y int) string {
	return strings.TrimRight(buf.Row(y), " ")
}
