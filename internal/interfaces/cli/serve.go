package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/panos-dim/missionviz/internal/config"
	"github.com/panos-dim/missionviz/internal/domain/highlight"
	"github.com/panos-dim/missionviz/internal/domain/scene/memscene"
	"github.com/panos-dim/missionviz/internal/domain/scene/watch"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	prom "github.com/panos-dim/missionviz/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/panos-dim/missionviz/internal/interfaces/http"
)

func newServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the highlight control server",
		Long: "Loads the scene fixture, builds the highlight engine, and serves the\n" +
			"control API until interrupted.  With scene.watch enabled the fixture is\n" +
			"hot-reloaded whenever it changes on disk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	metrics := prom.NewNopEngineMetrics()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		collector, err := prom.NewMetricsCollector(prom.CollectorConfig{Namespace: cfg.Metrics.Namespace})
		if err != nil {
			return err
		}
		metrics = prom.NewEngineMetrics(collector)
		metricsHandler = collector.Handler()
	}

	viewer := memscene.NewViewer(nil)
	var reload httpapi.SceneReloader
	if cfg.Scene.FixturePath != "" {
		viewer, err = memscene.LoadFixture(cfg.Scene.FixturePath)
		if err != nil {
			return err
		}
		path := cfg.Scene.FixturePath
		reload = func() error { return viewer.ReloadFixture(path) }
		log.Info("scene fixture loaded",
			logging.String("path", path),
			logging.Int("entities", viewer.Primary().Len()))
	}

	eng := highlight.NewEngine(viewer,
		highlight.WithStyleParams(cfg.Style.Params()),
		highlight.WithLogger(log),
		highlight.WithMetrics(metrics))

	handler := httpapi.NewHighlightHandler(eng, reload, log)
	server := httpapi.NewServer(*cfg, handler, metricsHandler, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Scene.Watch {
		watcher, err := watch.New(cfg.Scene.FixturePath, cfg.Scene.WatchDebounce,
			func(string) {
				if err := handler.Reload(); err != nil {
					log.Warn("fixture hot-reload rejected", logging.Err(err))
				}
			}, log)
		if err != nil {
			return err
		}
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}
