package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panos-dim/missionviz/internal/config"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
)

// Server is the HTTP control server: the highlight API, the health probe,
// and optionally the Prometheus exposition endpoint.
type Server struct {
	srv *http.Server
	log logging.Logger
}

// NewRouter assembles the gin engine with all routes registered.  metrics may
// be nil, in which case no exposition endpoint is mounted.
func NewRouter(cfg config.Config, handler *HighlightHandler, metrics http.Handler, log logging.Logger) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})
	if metrics != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics))
	}

	handler.RegisterRoutes(r)
	return r
}

// NewServer creates the control server for the given configuration.
func NewServer(cfg config.Config, handler *HighlightHandler, metrics http.Handler, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewNopLogger()
	}
	router := NewRouter(cfg, handler, metrics, log)

	return &Server{
		log: log.Named("http"),
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.log.Info("control server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down, honoring the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("control server shutting down")
	return s.srv.Shutdown(ctx)
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// requestLogger logs one line per request at debug level.  Kept deliberately
// lean; request metrics belong to the engine metric family, not to an
// access log.
func requestLogger(log logging.Logger) gin.HandlerFunc {
	if log == nil {
		log = logging.NewNopLogger()
	}
	log = log.Named("http")
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()))
	}
}
