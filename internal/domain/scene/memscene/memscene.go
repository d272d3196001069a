// Package memscene provides the in-memory scene host implementation used by
// tests, the CLI, and the control server.  It implements the scene.Viewer,
// scene.Collection and scene.Entity ports with plain maps and slices; there
// is no rendering, only a render-request counter that adapters and tests can
// observe.
package memscene

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/pkg/errors"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// propertyBag implements scene.Properties over a plain string map.
type propertyBag map[string]string

func (p propertyBag) String(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Entity is the in-memory scene.Entity implementation.
type Entity struct {
	id       string
	props    propertyBag // nil when the entity has no attributes
	position *visual.Position
	area     *scene.AreaGraphics
	point    *scene.PointGraphics
	marker   *scene.MarkerGraphics
}

func (e *Entity) ID() string { return e.id }

func (e *Entity) Properties() scene.Properties {
	if e.props == nil {
		return nil
	}
	return e.props
}

func (e *Entity) Area() *scene.AreaGraphics     { return e.area }
func (e *Entity) Point() *scene.PointGraphics   { return e.point }
func (e *Entity) Marker() *scene.MarkerGraphics { return e.marker }

func (e *Entity) Position() (visual.Position, bool) {
	if e.position == nil {
		return visual.Position{}, false
	}
	return *e.position, true
}

// Collection is the in-memory scene.Collection implementation.  Iteration
// order follows insertion order so that cache last-wins semantics are
// deterministic.
type Collection struct {
	name    string
	order   []string
	entries map[string]*Entity
}

// NewCollection creates an empty named collection.
func NewCollection(name string) *Collection {
	return &Collection{
		name:    name,
		entries: make(map[string]*Entity),
	}
}

// Name returns the collection's display name.
func (c *Collection) Name() string { return c.name }

func (c *Collection) Len() int { return len(c.entries) }

func (c *Collection) Each(fn func(scene.Entity) bool) {
	for _, id := range c.order {
		if e, ok := c.entries[id]; ok {
			if !fn(e) {
				return
			}
		}
	}
}

func (c *Collection) ByID(id string) (scene.Entity, bool) {
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return e, true
}

func (c *Collection) Add(t scene.Template) (scene.Entity, error) {
	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := c.entries[id]; exists {
		return nil, errors.New(errors.ErrCodeEntityExists, "entity already exists").
			WithDetail("id=" + id)
	}

	e := &Entity{id: id}
	if len(t.Properties) > 0 {
		e.props = make(propertyBag, len(t.Properties))
		for k, v := range t.Properties {
			e.props[k] = v
		}
	}
	if t.Position != nil {
		pos := *t.Position
		e.position = &pos
	}
	if t.Area != nil {
		area := *t.Area
		area.Hierarchy = append([]visual.Position(nil), t.Area.Hierarchy...)
		e.area = &area
	}
	if t.Point != nil {
		point := *t.Point
		e.point = &point
	}
	if t.Marker != nil {
		marker := *t.Marker
		e.marker = &marker
	}

	c.entries[id] = e
	c.order = append(c.order, id)
	return e, nil
}

func (c *Collection) Remove(id string) bool {
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every entity from the collection.
func (c *Collection) Clear() {
	c.order = c.order[:0]
	for id := range c.entries {
		delete(c.entries, id)
	}
}

// Viewer is the in-memory scene.Viewer implementation.
type Viewer struct {
	primary   *Collection
	secondary []*Collection

	renderRequests atomic.Int64
}

// NewViewer creates a viewer with one primary collection and the given
// secondary collections.
func NewViewer(primary *Collection, secondary ...*Collection) *Viewer {
	if primary == nil {
		primary = NewCollection("primary")
	}
	return &Viewer{primary: primary, secondary: secondary}
}

func (v *Viewer) Primary() scene.Collection { return v.primary }

func (v *Viewer) Secondary() []scene.Collection {
	out := make([]scene.Collection, len(v.secondary))
	for i, c := range v.secondary {
		out[i] = c
	}
	return out
}

func (v *Viewer) RequestRender() { v.renderRequests.Add(1) }

// RenderRequests reports how many times RequestRender has been invoked.
// Used by tests to assert the render-invalidation contract.
func (v *Viewer) RenderRequests() int64 { return v.renderRequests.Load() }

// PrimaryCollection returns the concrete primary collection for fixture
// reloading and test setup.
func (v *Viewer) PrimaryCollection() *Collection { return v.primary }

// SecondaryCollections returns the concrete secondary collections.
func (v *Viewer) SecondaryCollections() []*Collection { return v.secondary }
