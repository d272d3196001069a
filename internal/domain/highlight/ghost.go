package highlight

import (
	"sort"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	prom "github.com/panos-dim/missionviz/internal/infrastructure/monitoring/prometheus"
)

// ghostMarkerKey is the attribute written onto every entity the manager
// creates.  Removal is permitted only for entities that are in the
// manager's registry or that carry this marker; the manager must never
// delete a scene-host-owned entity.
const ghostMarkerKey = "missionviz_ghost"

// GhostManager creates, deduplicates, and bulk-removes the ephemeral clone
// entities used to visualize a moved item's prior state.  Ghost entities
// that already exist in the scene are treated as authoritative: they are
// returned unchanged and never registered, so they survive RemoveAll.
type GhostManager struct {
	viewer   scene.Viewer
	registry map[string]struct{}
	params   StyleParams

	log     logging.Logger
	metrics *prom.EngineMetrics
}

// NewGhostManager creates a manager for the given viewer.
func NewGhostManager(viewer scene.Viewer, params StyleParams, log logging.Logger, metrics *prom.EngineMetrics) *GhostManager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prom.NewNopEngineMetrics()
	}
	return &GhostManager{
		viewer:   viewer,
		registry: make(map[string]struct{}),
		params:   params.sanitize(),
		log:      log.Named("ghost"),
		metrics:  metrics,
	}
}

// lookup finds an entity by identifier across the primary and secondary
// collections.
func (g *GhostManager) lookup(id string) (scene.Entity, bool) {
	if e, ok := g.viewer.Primary().ByID(id); ok {
		return e, true
	}
	for _, c := range g.viewer.Secondary() {
		if e, ok := c.ByID(id); ok {
			return e, true
		}
	}
	return nil, false
}

// Ensure returns the entity identified by ghostID, synthesizing it from
// source when absent.  An entity already in the scene is returned as-is.  A
// synthesized clone carries, per geometry kind the source has: the source's
// area hierarchy under ghost fill/outline, the source's position under ghost
// point styling, and the source's position and image under faded ghost
// marker styling.  When the source has nothing clonable, or the host rejects
// the creation, Ensure returns nil and registers nothing.
func (g *GhostManager) Ensure(source scene.Entity, ghostID string) scene.Entity {
	if g.viewer == nil || ghostID == "" {
		return nil
	}
	if existing, ok := g.lookup(ghostID); ok {
		return existing
	}
	if source == nil {
		return nil
	}

	t := scene.Template{
		ID:         ghostID,
		Properties: map[string]string{ghostMarkerKey: "true"},
	}
	clonable := false

	if area := source.Area(); area != nil {
		t.Area = &scene.AreaGraphics{
			Hierarchy:    area.Hierarchy,
			Material:     GhostColors.Fill,
			Outline:      true,
			OutlineColor: GhostColors.Outline,
			OutlineWidth: g.params.OutlineWidth,
		}
		clonable = true
	}
	if source.Point() != nil {
		if pos, ok := source.Position(); ok {
			t.Position = &pos
			t.Point = &scene.PointGraphics{
				Color:        GhostColors.Fill,
				OutlineColor: GhostColors.Outline,
				PixelSize:    g.params.PointPixelSize,
			}
			clonable = true
		}
	}
	if marker := source.Marker(); marker != nil {
		if pos, ok := source.Position(); ok {
			t.Position = &pos
			t.Marker = &scene.MarkerGraphics{
				Image: marker.Image,
				Color: GhostColors.Glow.ScaleAlpha(g.params.GhostMarkerAlphaScale),
				Scale: g.params.MarkerScale,
			}
			clonable = true
		}
	}

	if !clonable {
		g.metrics.GhostCloneFailuresTotal.Inc()
		g.log.Debug("source has no clonable geometry",
			logging.String("source", source.ID()),
			logging.String("ghost", ghostID))
		return nil
	}

	clone, err := g.viewer.Primary().Add(t)
	if err != nil {
		// Host rejected the creation; proceed without this ghost.
		g.metrics.GhostCloneFailuresTotal.Inc()
		g.log.Warn("ghost clone creation rejected by scene host",
			logging.String("ghost", ghostID),
			logging.Err(err))
		return nil
	}

	g.registry[ghostID] = struct{}{}
	g.metrics.GhostClonesCreatedTotal.Inc()
	g.metrics.GhostClonesActive.Set(float64(len(g.registry)))
	return clone
}

// Remove deletes the entity only if it is engine-owned: registered here or
// carrying the ghost marker attribute.  Host-owned ghost entities are left
// untouched.
func (g *GhostManager) Remove(ghostID string) {
	if g.viewer == nil {
		return
	}
	if _, registered := g.registry[ghostID]; !registered {
		e, ok := g.viewer.Primary().ByID(ghostID)
		if !ok {
			return
		}
		props := e.Properties()
		if props == nil {
			return
		}
		if _, marked := props.String(ghostMarkerKey); !marked {
			return
		}
	}
	g.viewer.Primary().Remove(ghostID)
	delete(g.registry, ghostID)
	g.metrics.GhostClonesActive.Set(float64(len(g.registry)))
}

// RemoveAll removes every registered clone and clears the registry.  This is
// the only bulk-teardown path; the controller calls it on every mode switch
// so clones cannot leak across requests.
func (g *GhostManager) RemoveAll() {
	if g.viewer == nil || len(g.registry) == 0 {
		return
	}
	for id := range g.registry {
		g.viewer.Primary().Remove(id)
		delete(g.registry, id)
	}
	g.metrics.GhostClonesActive.Set(0)
}

// Owned reports whether the manager created the entity with this identifier.
func (g *GhostManager) Owned(id string) bool {
	_, ok := g.registry[id]
	return ok
}

// RegisteredIDs returns the sorted identifiers of every clone the manager
// currently owns.  Diagnostics only.
func (g *GhostManager) RegisteredIDs() []string {
	out := make([]string, 0, len(g.registry))
	for id := range g.registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
