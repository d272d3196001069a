package config

import "time"

// Default value constants.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultWatchDebounce = 250 * time.Millisecond

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "missionviz"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate so that optional-but-defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Scene.WatchDebounce == 0 {
		cfg.Scene.WatchDebounce = DefaultWatchDebounce
	}

	// Style magnitudes deliberately stay zero here; the engine substitutes
	// its own defaults per field, and duplicating those constants would let
	// the two drift apart.

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
}
