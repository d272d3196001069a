// Package config defines the configuration structures for the missionviz
// control server and CLI.  No I/O or parsing logic lives here, only plain
// data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/panos-dim/missionviz/internal/domain/highlight"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP control-server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SceneConfig holds scene-fixture parameters: where the fixture lives and
// whether it is hot-reloaded on change.
type SceneConfig struct {
	FixturePath   string        `mapstructure:"fixture_path"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// StyleConfig holds the highlight style magnitudes.  Zero values select the
// built-in defaults.
type StyleConfig struct {
	OutlineWidth          float64 `mapstructure:"outline_width"`
	PointPixelSize        float64 `mapstructure:"point_pixel_size"`
	MarkerScale           float64 `mapstructure:"marker_scale"`
	GhostMarkerAlphaScale float64 `mapstructure:"ghost_marker_alpha_scale"`
}

// Params converts the section into the engine's style parameter struct.
func (s StyleConfig) Params() highlight.StyleParams {
	return highlight.StyleParams{
		OutlineWidth:          s.OutlineWidth,
		PointPixelSize:        s.PointPixelSize,
		MarkerScale:           s.MarkerScale,
		GhostMarkerAlphaScale: s.GhostMarkerAlphaScale,
	}
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Scene   SceneConfig       `mapstructure:"scene"`
	Style   StyleConfig       `mapstructure:"style"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Log     logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.  It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Scene.Watch && c.Scene.FixturePath == "" {
		return fmt.Errorf("config: scene.watch requires scene.fixture_path")
	}
	if c.Scene.WatchDebounce < 0 {
		return fmt.Errorf("config: scene.watch_debounce must be ≥ 0, got %s", c.Scene.WatchDebounce)
	}

	if c.Style.OutlineWidth < 0 || c.Style.PointPixelSize < 0 || c.Style.MarkerScale < 0 {
		return fmt.Errorf("config: style magnitudes must be ≥ 0")
	}
	if c.Style.GhostMarkerAlphaScale < 0 || c.Style.GhostMarkerAlphaScale > 1 {
		return fmt.Errorf("config: style.ghost_marker_alpha_scale %g is out of range [0, 1]",
			c.Style.GhostMarkerAlphaScale)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}

	return nil
}
