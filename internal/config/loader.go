package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/panos-dim/missionviz/pkg/errors"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MISSIONVIZ"

// newViper builds a pre-configured Viper instance with the standard settings:
// YAML file type, MISSIONVIZ_ env prefix, automatic env binding, and a key
// replacer that maps "." → "_" so that nested keys like "server.port" resolve
// to "MISSIONVIZ_SERVER_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the YAML file at configPath, merges any MISSIONVIZ_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigUnreadable, "failed to read config file").
			WithDetail("path=" + configPath)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MISSIONVIZ_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for containerised deployments.
//
// Environment variable naming convention:
//
//	MISSIONVIZ_<SECTION>_<FIELD>   e.g.  MISSIONVIZ_SERVER_PORT, MISSIONVIZ_SCENE_FIXTURE_PATH
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "configuration validation failed")
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Intended for
// hot-reloading non-critical settings such as the log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// A changed file that fails to parse or validate does not trigger onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
