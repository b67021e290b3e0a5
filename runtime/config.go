package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sfncore/frankentui/render"
)

// Duration wraps time.Duration so YAML config can say "100ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// BudgetSettings is the YAML-facing shape of the frame budget knobs.
type BudgetSettings struct {
	Total          Duration `yaml:"total"`
	RenderFraction float64  `yaml:"render_fraction"`
	Window         int      `yaml:"window"`
	DegradeAfter   int      `yaml:"degrade_after"`
	UpgradeAfter   int      `yaml:"upgrade_after"`
}

func (b BudgetSettings) budgetConfig() render.BudgetConfig {
	return render.BudgetConfig{
		Total:          b.Total.Duration,
		RenderFraction: b.RenderFraction,
		Window:         b.Window,
		DegradeAfter:   b.DegradeAfter,
		UpgradeAfter:   b.UpgradeAfter,
	}
}

// Config controls how a Program attaches to the terminal and how its
// loop paces itself.
type Config struct {
	// ScreenMode is "inline" or "alt".
	ScreenMode string `yaml:"screen_mode"`
	// UIHeight is the inline UI region height in rows. Ignored in alt
	// mode.
	UIHeight int `yaml:"ui_height"`
	// Anchor is "bottom" or "top"; where the inline region sits.
	Anchor string `yaml:"anchor"`
	// PollTimeout caps how long one loop iteration blocks on input.
	PollTimeout Duration `yaml:"poll_timeout"`
	// ResizeDebounce is the quiet period before a resize applies.
	ResizeDebounce Duration `yaml:"resize_debounce"`

	Mouse          bool `yaml:"mouse"`
	BracketedPaste bool `yaml:"bracketed_paste"`
	FocusReporting bool `yaml:"focus_reporting"`

	Budget BudgetSettings `yaml:"budget"`

	// Logger receives the runtime's own diagnostics. Nil means silent.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns an inline four-row bottom-anchored setup with
// bracketed paste on and everything else off.
func DefaultConfig() Config {
	return Config{
		ScreenMode:     "inline",
		UIHeight:       4,
		Anchor:         "bottom",
		PollTimeout:    Duration{100 * time.Millisecond},
		ResizeDebounce: Duration{100 * time.Millisecond},
		BracketedPaste: true,
	}
}

// Fullscreen returns a Config for the alternate screen.
func Fullscreen() Config {
	cfg := DefaultConfig()
	cfg.ScreenMode = "alt"
	return cfg
}

// Inline returns a Config for an inline region of height rows.
func Inline(height int) Config {
	cfg := DefaultConfig()
	cfg.UIHeight = height
	return cfg
}

// WithMouse returns a copy of the config with mouse reporting on.
func (c Config) WithMouse() Config {
	c.Mouse = true
	return c
}

// WithLogger returns a copy of the config using the given logger.
func (c Config) WithLogger(logger *zap.Logger) Config {
	c.Logger = logger
	return c
}

func (c Config) screenMode() render.ScreenMode {
	if c.ScreenMode == "alt" {
		return render.ScreenAlt
	}
	return render.ScreenInline
}

func (c Config) anchor() render.Anchor {
	if c.Anchor == "top" {
		return render.AnchorTop
	}
	return render.AnchorBottom
}

func (c Config) pollTimeout() time.Duration {
	if c.PollTimeout.Duration <= 0 {
		return 100 * time.Millisecond
	}
	return c.PollTimeout.Duration
}

func (c Config) resizeDebounce() time.Duration {
	if c.ResizeDebounce.Duration <= 0 {
		return 100 * time.Millisecond
	}
	return c.ResizeDebounce.Duration
}

// LoadConfig reads a YAML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the conventional config location under
// the user's config directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "frankentui", "config.yaml"), nil
}
