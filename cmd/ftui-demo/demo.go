package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sfncore/frankentui/event"
	"github.com/sfncore/frankentui/internal/logging"
	"github.com/sfncore/frankentui/render"
	"github.com/sfncore/frankentui/runtime"
	"github.com/sfncore/frankentui/sub"
)

var (
	fullscreen bool
	uiHeight   int
	configPath string
	mouse      bool
	feedURL    string
)

func init() {
	rootCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Use the alternate screen instead of an inline region")
	rootCmd.Flags().IntVar(&uiHeight, "height", 4, "Inline region height in rows")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: the user config dir)")
	rootCmd.Flags().BoolVar(&mouse, "mouse", false, "Enable mouse reporting")
	rootCmd.Flags().StringVar(&feedURL, "feed", "", "Websocket URL to stream into the demo")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadDemoConfig()
	if err != nil {
		return err
	}
	if fullscreen {
		cfg.ScreenMode = "alt"
	}
	if cmd.Flags().Changed("height") {
		cfg.UIHeight = uiHeight
	}
	if mouse {
		cfg.Mouse = true
	}
	cfg.Logger = logging.GetLogger()

	p, err := runtime.New[demoMsg](&demoModel{clockOn: true}, cfg)
	if err != nil {
		return err
	}
	return p.Run()
}

// loadDemoConfig reads the --config file when given, otherwise the
// conventional location if it exists, otherwise the defaults.
func loadDemoConfig() (runtime.Config, error) {
	if configPath != "" {
		return runtime.LoadConfig(configPath)
	}
	path, err := runtime.DefaultConfigPath()
	if err != nil {
		return runtime.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return runtime.DefaultConfig(), nil
	}
	return runtime.LoadConfig(path)
}

type msgKind int

const (
	kindNoop msgKind = iota
	kindKey
	kindResize
	kindClock
	kindTaskDone
	kindFeed
)

type demoMsg struct {
	kind   msgKind
	key    event.Key
	width  int
	height int
	now    time.Time
	text   string
}

// demoModel is a counter with a clock subscription, demonstrating
// every command variant the runtime interprets.
type demoModel struct {
	count    int
	width    int
	height   int
	now      time.Time
	clockOn  bool
	tasks    int
	lastFeed string
}

func (m *demoModel) Init() runtime.Cmd[demoMsg] {
	return runtime.Log[demoMsg]("demo started; press q to quit")
}

func (m *demoModel) Update(msg demoMsg) runtime.Cmd[demoMsg] {
	switch msg.kind {
	case kindKey:
		return m.handleKey(msg.key)
	case kindResize:
		m.width, m.height = msg.width, msg.height
		return runtime.Log[demoMsg](fmt.Sprintf("resized to %dx%d", msg.width, msg.height))
	case kindClock:
		m.now = msg.now
	case kindTaskDone:
		m.tasks++
		return runtime.Log[demoMsg]("task finished: " + msg.text)
	case kindFeed:
		m.lastFeed = msg.text
	}
	return runtime.None[demoMsg]()
}

func (m *demoModel) handleKey(key event.Key) runtime.Cmd[demoMsg] {
	switch {
	case key.Is("q"), key.Is("ctrl+c"):
		return runtime.Sequence(
			runtime.Log[demoMsg]("bye"),
			runtime.Quit[demoMsg](),
		)
	case key.Is("space"):
		m.count++
	case key.Is("t"):
		return runtime.Task(func() demoMsg {
			time.Sleep(500 * time.Millisecond)
			return demoMsg{kind: kindTaskDone, text: "slept 500ms"}
		})
	case key.Is("l"):
		return runtime.Log[demoMsg](fmt.Sprintf("count is %d", m.count))
	case key.Is("w"):
		m.clockOn = !m.clockOn
	}
	return runtime.None[demoMsg]()
}

func (m *demoModel) View(frame *render.Frame) {
	bold := render.Style{Bold: true}
	faint := render.Style{Faint: true}
	if frame.Degradation() >= render.DegradationMonochrome {
		bold = render.Style{}
		faint = render.Style{}
	}

	frame.SetString(0, 0, fmt.Sprintf("frankentui demo: count %d", m.count), bold)

	status := "clock off"
	if m.clockOn && !m.now.IsZero() {
		status = m.now.Format("15:04:05")
	}
	frame.SetString(0, 1, fmt.Sprintf("%s | %dx%d | %d tasks", status, m.width, m.height, m.tasks), render.Style{})

	if m.lastFeed != "" {
		frame.SetString(0, 2, "feed: "+m.lastFeed, render.Style{})
	}
	if frame.Height() > 3 {
		frame.SetString(0, frame.Height()-1, "space: count  t: task  l: log  w: clock  q: quit", faint)
	}
}

func (m *demoModel) FromEvent(ev event.Event) demoMsg {
	switch e := ev.(type) {
	case event.Key:
		return demoMsg{kind: kindKey, key: e}
	case event.Resize:
		return demoMsg{kind: kindResize, width: e.Width, height: e.Height}
	case event.Paste:
		return demoMsg{kind: kindFeed, text: e.Text}
	}
	return demoMsg{kind: kindNoop}
}

func (m *demoModel) Subscriptions() []runtime.Subscription[demoMsg] {
	var subs []runtime.Subscription[demoMsg]
	if m.clockOn {
		subs = append(subs, sub.NewInterval("clock", time.Second, func(t time.Time) demoMsg {
			return demoMsg{kind: kindClock, now: t}
		}))
	}
	if feedURL != "" {
		subs = append(subs, &sub.WebSocket[demoMsg]{
			Name:   "feed",
			URL:    feedURL,
			Logger: logging.GetLogger(),
			Decode: func(data []byte) (demoMsg, bool) {
				return demoMsg{kind: kindFeed, text: string(data)}, true
			},
		})
	}
	return subs
}
