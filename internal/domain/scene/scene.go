// Package scene defines the ports through which the highlight engine
// consumes its external scene/viewer host.  The host owns every entity and
// performs all rendering; the engine holds only transient entity references
// and mutates nothing beyond the visual fields exposed here.
//
// A production deployment adapts its real viewer to these interfaces; the
// memscene subpackage provides the in-memory implementation used by tests,
// the CLI, and the control server.
package scene

import "github.com/panos-dim/missionviz/pkg/types/visual"

// Properties is the typed optional-attribute accessor for an entity's
// attribute bag.  Absent keys and values that are not representable as a
// string both report ok == false; attribute access never fails loudly.
type Properties interface {
	String(key string) (value string, ok bool)
}

// AreaGraphics is the area (polygon) visual sub-object of an entity.  The
// engine may read and write every field; Hierarchy is the outer ring of the
// polygon.
type AreaGraphics struct {
	Hierarchy    []visual.Position
	Material     visual.Color
	Outline      bool
	OutlineColor visual.Color
	OutlineWidth float64
}

// PointGraphics is the point-marker visual sub-object of an entity.
type PointGraphics struct {
	Color        visual.Color
	OutlineColor visual.Color
	PixelSize    float64
}

// MarkerGraphics is the billboard-marker visual sub-object of an entity.
type MarkerGraphics struct {
	Image string
	Color visual.Color
	Scale float64
}

// Entity is a reference to one visual entity in the host's scene graph.
// Geometry accessors return nil when the entity lacks that visual kind; the
// returned pointers alias host-owned state, so writes through them are
// immediately visible to the renderer.
//
// References are transient: they must not be retained across a scene reload.
// Long-lived bookkeeping is keyed by ID() instead.
type Entity interface {
	ID() string
	Properties() Properties // may be nil
	Area() *AreaGraphics
	Point() *PointGraphics
	Marker() *MarkerGraphics
	Position() (visual.Position, bool)
}

// Template describes an entity to be created through Collection.Add.  Only
// the ghost clone manager creates entities; every field except ID is
// optional.
type Template struct {
	ID         string
	Position   *visual.Position
	Area       *AreaGraphics
	Point      *PointGraphics
	Marker     *MarkerGraphics
	Properties map[string]string
}

// Collection is one enumerable entity collection of the host.
type Collection interface {
	// Len returns the number of entities currently in the collection.
	// Must be O(1); the cache staleness heuristic calls it on every lookup.
	Len() int

	// Each calls fn for every entity until fn returns false.
	Each(fn func(Entity) bool)

	// ByID returns the entity with the given identifier, if present.
	ByID(id string) (Entity, bool)

	// Add creates a new entity from the template and returns it.
	Add(t Template) (Entity, error)

	// Remove deletes the entity with the given identifier, reporting
	// whether anything was removed.
	Remove(id string) bool
}

// Viewer is the narrow surface of the scene host the engine depends on: one
// primary collection, any number of secondary collections, and a
// render-invalidation hook.
type Viewer interface {
	Primary() Collection
	Secondary() []Collection

	// RequestRender asks the host to redraw so that style mutations become
	// visible without relying on an automatic dirty check elsewhere.
	RequestRender()
}

// EntityCount returns the total entity population across the primary and all
// secondary collections.  This is the O(1) figure the cache staleness
// heuristic compares between lookups.
func EntityCount(v Viewer) int {
	n := v.Primary().Len()
	for _, c := range v.Secondary() {
		n += c.Len()
	}
	return n
}
