package highlight

import (
	"sort"
	"time"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	prom "github.com/panos-dim/missionviz/internal/infrastructure/monitoring/prometheus"
)

// Engine is the stateful highlight controller: it coordinates the cache,
// matcher, snapshot store, applier and ghost manager per incoming request,
// and owns the identifier sets that record the currently highlighted and
// currently ghosted entities.  Those two sets are the sole record needed to
// fully reverse a prior ApplyHighlights call.
//
// All mutable state is instance-owned; independent engines over different
// viewers never cross-contaminate, but only one Engine should be active
// against a given viewer at a time.  The engine is not reentrant: do not
// call ApplyHighlights or ClearAll from a callback triggered by one of their
// own side effects (e.g. a scene-change listener).
type Engine struct {
	viewer    scene.Viewer
	cache     *Cache
	matcher   *Matcher
	snapshots *SnapshotStore
	applier   *Applier
	ghosts    *GhostManager

	highlighted map[string]struct{}
	ghosted     map[string]struct{}

	log     logging.Logger
	metrics *prom.EngineMetrics
}

// Option customizes Engine construction.
type Option func(*options)

type options struct {
	params  StyleParams
	log     logging.Logger
	metrics *prom.EngineMetrics
}

// WithStyleParams overrides the default style magnitudes.
func WithStyleParams(p StyleParams) Option {
	return func(o *options) { o.params = p }
}

// WithLogger injects a structured logger.  Defaults to the no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics injects the engine metric family.  Defaults to no-op metrics.
func WithMetrics(m *prom.EngineMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewEngine creates an engine bound to the given viewer.  A nil viewer is
// tolerated: every public method then degrades to a no-op, matching the
// absent-scene-host error policy.
func NewEngine(viewer scene.Viewer, opts ...Option) *Engine {
	o := &options{
		params:  DefaultStyleParams(),
		log:     logging.NewNopLogger(),
		metrics: prom.NewNopEngineMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log.Named("highlight")
	snapshots := NewSnapshotStore()
	return &Engine{
		viewer:      viewer,
		cache:       NewCache(log, o.metrics),
		matcher:     NewMatcher(log, o.metrics),
		snapshots:   snapshots,
		applier:     NewApplier(snapshots, o.params),
		ghosts:      NewGhostManager(viewer, o.params, log, o.metrics),
		highlighted: make(map[string]struct{}),
		ghosted:     make(map[string]struct{}),
		log:         log,
		metrics:     o.metrics,
	}
}

// ApplyHighlights resolves and restyles the requested identifier sets.  The
// previous highlight is always cleared first (styles restored, engine-owned
// ghost clones removed) regardless of current state, so mode switches are
// idempotent and two highlight generations never visually overlap.
//
// A request that resolves zero entities is not an error; it degrades to an
// empty highlight.
func (e *Engine) ApplyHighlights(req Request) {
	if e.viewer == nil {
		return
	}
	start := time.Now()

	e.clearCurrent()

	index := e.cache.Get(e.viewer)
	colors := ColorsFor(req.Mode, req.DiffType)

	primary := e.matcher.Resolve(index, req.IDs)
	e.applier.Apply(primary, colors)
	for _, ent := range primary {
		e.highlighted[ent.ID()] = struct{}{}
	}

	if len(req.GhostIDs) > 0 {
		e.applyGhosts(req.GhostIDs, index, primary)
	}

	e.viewer.RequestRender()

	e.metrics.HighlightRequestsTotal.WithLabelValues(string(req.Mode)).Inc()
	e.metrics.HighlightedEntities.Set(float64(e.snapshots.Len()))
	e.metrics.ApplyDurationSeconds.Observe(time.Since(start).Seconds())
	e.log.Debug("highlight applied",
		logging.String("mode", string(req.Mode)),
		logging.Int("requested", len(req.IDs)),
		logging.Int("resolved", len(primary)),
		logging.Int("ghosts", len(e.ghosted)))
}

// applyGhosts resolves the requested ghost identifiers, synthesizes clones
// for any that are absent from the scene, and restyles the whole set with
// the ghost palette.
//
// Clone sources are paired positionally: ghost i clones primary entity
// i % len(primary).  The pairing is positional, not semantic; callers that
// pass ghost and primary lists that are not index-aligned may see the wrong
// source cloned.
func (e *Engine) applyGhosts(ghostIDs []string, index map[string]scene.Entity, primary []scene.Entity) {
	var ghosts []scene.Entity
	for i, ghostID := range ghostIDs {
		if resolved := e.matcher.Resolve(index, []string{ghostID}); len(resolved) > 0 {
			ghosts = append(ghosts, resolved...)
			continue
		}
		if len(primary) == 0 {
			continue
		}
		source := primary[i%len(primary)]
		if clone := e.ghosts.Ensure(source, ghostID); clone != nil {
			ghosts = append(ghosts, clone)
		}
	}

	e.applier.Apply(ghosts, GhostColors)
	for _, ent := range ghosts {
		e.ghosted[ent.ID()] = struct{}{}
	}
}

// ClearAll restores every tracked entity, removes every engine-owned ghost
// clone, resets the tracked sets, and requests a redraw.  Safe to call when
// nothing is highlighted.
func (e *Engine) ClearAll() {
	if e.viewer == nil {
		return
	}
	e.clearCurrent()
	e.viewer.RequestRender()

	e.metrics.ClearsTotal.Inc()
	e.metrics.HighlightedEntities.Set(float64(e.snapshots.Len()))
}

// clearCurrent performs the Highlighted → Idle transition: restore styles
// for every tracked identifier, drop snapshots for entities that have left
// the scene, remove engine-owned clones, and reset the tracked sets.
func (e *Engine) clearCurrent() {
	if len(e.highlighted) == 0 && len(e.ghosted) == 0 {
		// Idle already; RemoveAll is a no-op but keeps the clone registry
		// honest if a caller manipulated ghosts directly.
		e.ghosts.RemoveAll()
		return
	}

	index := e.cache.Get(e.viewer)
	restore := func(ids map[string]struct{}) {
		for id := range ids {
			if ent, ok := index[id]; ok {
				e.snapshots.Restore(ent)
			} else {
				e.snapshots.Drop(id)
			}
			delete(ids, id)
		}
	}
	// Ghosts are restored before clone removal so their snapshots are
	// consumed rather than leaked.
	restore(e.ghosted)
	restore(e.highlighted)
	e.ghosts.RemoveAll()
}

// HighlightedEntityIDs returns the sorted on-entity identifiers currently
// under a primary highlight override.  Read-only diagnostics.
func (e *Engine) HighlightedEntityIDs() []string {
	return sortedKeys(e.highlighted)
}

// GhostEntityIDs returns the sorted on-entity identifiers of the currently
// tracked ghost entities (resolved and synthesized).  Read-only diagnostics.
func (e *Engine) GhostEntityIDs() []string {
	return sortedKeys(e.ghosted)
}

// InvalidateEntityCache forces an index rebuild on the next resolution.
// Escape hatch for hosts that mutate entity populations without changing
// the total count, which the staleness heuristic cannot see.
func (e *Engine) InvalidateEntityCache() {
	e.cache.Invalidate()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
