// Package cli defines the missionviz command tree: the long-running control
// server and the one-shot highlight resolver.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panos-dim/missionviz/internal/config"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "missionviz",
		Short: "Entity resolution and highlight styling for mission scenes",
		Long: "missionviz resolves logical mission identifiers (targets, acquisitions,\n" +
			"swaths) to the visual entities representing them, applies reversible\n" +
			"highlight styling, and manages ghost clones for moved items.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newHighlightCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig resolves the effective configuration for a subcommand: the
// config file when --config is given, environment variables otherwise, with
// the --log-level flag winning over both.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg, nil
}

// newLogger builds the process logger from configuration.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(cfg.Log)
}
