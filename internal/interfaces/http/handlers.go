// Package http exposes the highlight engine over a small REST control
// surface.  The engine itself is single-threaded; the handler serializes all
// engine access behind one mutex so concurrent HTTP clients cannot interleave
// operations.
package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/panos-dim/missionviz/internal/domain/highlight"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	"github.com/panos-dim/missionviz/pkg/errors"
)

// HighlightService is the engine surface the control API drives.
type HighlightService interface {
	ApplyHighlights(req highlight.Request)
	ClearAll()
	HighlightedEntityIDs() []string
	GhostEntityIDs() []string
	InvalidateEntityCache()
}

// SceneReloader re-reads the scene fixture from disk.  Optional; when absent
// the reload endpoint answers 501.
type SceneReloader func() error

// HighlightHandler carries the control-API endpoints.
type HighlightHandler struct {
	mu      sync.Mutex
	service HighlightService
	reload  SceneReloader
	log     logging.Logger
}

// NewHighlightHandler creates the handler.  reload may be nil.
func NewHighlightHandler(service HighlightService, reload SceneReloader, log logging.Logger) *HighlightHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HighlightHandler{
		service: service,
		reload:  reload,
		log:     log.Named("api"),
	}
}

// RegisterRoutes registers the control API under /api/v1.
func (h *HighlightHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.POST("/highlights", h.Apply)
	api.DELETE("/highlights", h.Clear)
	api.GET("/highlights", h.State)
	api.POST("/cache/invalidate", h.InvalidateCache)
	api.POST("/scene/reload", h.ReloadScene)
}

// StateResponse reports the engine's currently tracked identifier sets.
type StateResponse struct {
	HighlightedEntityIDs []string `json:"highlightedEntityIds"`
	GhostEntityIDs       []string `json:"ghostEntityIds"`
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeAppError maps an application error to its HTTP status via the error
// code registry.
func writeAppError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(errors.HTTPStatusForCode(code), ErrorResponse{
		Code:    code.String(),
		Message: err.Error(),
	})
}

// Apply handles POST /api/v1/highlights.
func (h *HighlightHandler) Apply(c *gin.Context) {
	var req highlight.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed highlight request"))
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(c, err)
		return
	}

	h.mu.Lock()
	h.service.ApplyHighlights(req)
	state := h.state()
	h.mu.Unlock()

	h.log.Info("highlight request applied",
		logging.String("mode", string(req.Mode)),
		logging.Int("ids", len(req.IDs)),
		logging.Int("ghostIds", len(req.GhostIDs)))
	c.JSON(http.StatusOK, state)
}

// Clear handles DELETE /api/v1/highlights.
func (h *HighlightHandler) Clear(c *gin.Context) {
	h.mu.Lock()
	h.service.ClearAll()
	h.mu.Unlock()

	c.Status(http.StatusNoContent)
}

// State handles GET /api/v1/highlights.
func (h *HighlightHandler) State(c *gin.Context) {
	h.mu.Lock()
	state := h.state()
	h.mu.Unlock()

	c.JSON(http.StatusOK, state)
}

// InvalidateCache handles POST /api/v1/cache/invalidate.
func (h *HighlightHandler) InvalidateCache(c *gin.Context) {
	h.mu.Lock()
	h.service.InvalidateEntityCache()
	h.mu.Unlock()

	c.Status(http.StatusNoContent)
}

// ReloadScene handles POST /api/v1/scene/reload.
func (h *HighlightHandler) ReloadScene(c *gin.Context) {
	if h.reload == nil {
		writeAppError(c, errors.New(errors.CodeNotImplemented, "scene reloading is not configured"))
		return
	}
	if err := h.Reload(); err != nil {
		writeAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reload re-reads the scene fixture and invalidates the entity cache under
// the handler mutex.  The fixture watcher calls this too, so file-change
// reloads and HTTP requests can never interleave on the engine.
func (h *HighlightHandler) Reload() error {
	if h.reload == nil {
		return errors.New(errors.CodeNotImplemented, "scene reloading is not configured")
	}

	h.mu.Lock()
	err := h.reload()
	if err == nil {
		// A reload replaces entity populations wholesale; the count heuristic
		// cannot be trusted across it.
		h.service.InvalidateEntityCache()
	}
	h.mu.Unlock()

	if err != nil {
		h.log.Error("scene reload failed", logging.Err(err))
		return err
	}
	h.log.Info("scene fixture reloaded")
	return nil
}

// state must be called with the handler mutex held.
func (h *HighlightHandler) state() StateResponse {
	highlighted := h.service.HighlightedEntityIDs()
	ghosts := h.service.GhostEntityIDs()
	if highlighted == nil {
		highlighted = []string{}
	}
	if ghosts == nil {
		ghosts = []string{}
	}
	return StateResponse{HighlightedEntityIDs: highlighted, GhostEntityIDs: ghosts}
}
