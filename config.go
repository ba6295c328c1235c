package willowxr

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultRayLength is the pointing ray length when nothing is hit.
	DefaultRayLength = 6.0
	// DefaultControllers is the number of hands created by NewInteractionContext.
	DefaultControllers = 2
	// DefaultLogLevel controls verbosity for interaction logs.
	DefaultLogLevel = "info"
)

// Config holds the tunables of an InteractionContext. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	// RayLength is the ray length shown when the ray hits nothing.
	RayLength float64 `toml:"ray_length"`
	// HoverColor and GrabColor are the emissive highlight colors.
	HoverColor Color `toml:"hover_color"`
	GrabColor  Color `toml:"grab_color"`
	// HighlightFade eases highlights in and out over this many seconds.
	// Zero switches them instantly.
	HighlightFade float64 `toml:"highlight_fade"`
	// Controllers is how many controllers (ids 0..n-1) are created.
	Controllers int `toml:"controllers"`
	// InputQueueSize bounds the cross-goroutine input queue.
	InputQueueSize int `toml:"input_queue_size"`
	// BridgeAddr is the listen address of the WebSocket input bridge.
	// Empty disables it.
	BridgeAddr string `toml:"bridge_addr"`

	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration of the VR grab demo: two hands,
// red hover, blue grab, a 6 unit ray.
func DefaultConfig() Config {
	return Config{
		RayLength:      DefaultRayLength,
		HoverColor:     DefaultHoverColor,
		GrabColor:      DefaultGrabColor,
		Controllers:    DefaultControllers,
		InputQueueSize: defaultInputQueueSize,
		LogLevel:       DefaultLogLevel,
	}
}

// LoadConfig parses TOML over DefaultConfig. Keys absent from data keep their
// defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a TOML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.RayLength <= 0 {
		return fmt.Errorf("invalid config: ray_length must be positive, got %v", c.RayLength)
	}
	if c.HighlightFade < 0 {
		return fmt.Errorf("invalid config: highlight_fade must not be negative, got %v", c.HighlightFade)
	}
	if c.Controllers < 0 {
		return fmt.Errorf("invalid config: controllers must not be negative, got %d", c.Controllers)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Logger returns a text logger writing to w at the configured level. Debug
// mode forces debug level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}

// newSink builds the highlight sink the config asks for.
func (c Config) newSink() HighlightSink {
	if c.HighlightFade > 0 {
		return NewFadeHighlighter(c.HoverColor, c.GrabColor, float32(c.HighlightFade))
	}
	return NewEmissiveHighlighter(c.HoverColor, c.GrabColor)
}
