package highlight

import (
	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// styleSnapshot records the pre-override values of every visual property the
// engine is permitted to mutate, per geometry kind the entity had at capture
// time.
type styleSnapshot struct {
	hasArea          bool
	areaMaterial     visual.Color
	areaOutline      bool
	areaOutlineColor visual.Color
	areaOutlineWidth float64

	hasPoint          bool
	pointColor        visual.Color
	pointOutlineColor visual.Color
	pointPixelSize    float64

	hasMarker   bool
	markerColor visual.Color
	markerScale float64
}

// SnapshotStore captures and restores entity styling.  Snapshots live in a
// side table keyed by entity identifier, never as annotations on the
// host-owned entity objects.  The store guarantees that a snapshot exists for
// an entity iff that entity currently carries an active style override:
// Capture is idempotent, and Restore deletes the snapshot it applied.
type SnapshotStore struct {
	snaps map[string]styleSnapshot
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snaps: make(map[string]styleSnapshot)}
}

// Capture records the entity's current styling unless a snapshot already
// exists, in which case it is a no-op: within one highlight cycle only the
// first capture holds the true pre-override state, so only it may win.
func (s *SnapshotStore) Capture(e scene.Entity) {
	if e == nil {
		return
	}
	if _, exists := s.snaps[e.ID()]; exists {
		return
	}

	var snap styleSnapshot
	if area := e.Area(); area != nil {
		snap.hasArea = true
		snap.areaMaterial = area.Material
		snap.areaOutline = area.Outline
		snap.areaOutlineColor = area.OutlineColor
		snap.areaOutlineWidth = area.OutlineWidth
	}
	if point := e.Point(); point != nil {
		snap.hasPoint = true
		snap.pointColor = point.Color
		snap.pointOutlineColor = point.OutlineColor
		snap.pointPixelSize = point.PixelSize
	}
	if marker := e.Marker(); marker != nil {
		snap.hasMarker = true
		snap.markerColor = marker.Color
		snap.markerScale = marker.Scale
	}
	s.snaps[e.ID()] = snap
}

// Restore writes every captured property back verbatim and deletes the
// snapshot.  No-op when no snapshot exists for the entity.
func (s *SnapshotStore) Restore(e scene.Entity) {
	if e == nil {
		return
	}
	snap, exists := s.snaps[e.ID()]
	if !exists {
		return
	}

	if snap.hasArea {
		if area := e.Area(); area != nil {
			area.Material = snap.areaMaterial
			area.Outline = snap.areaOutline
			area.OutlineColor = snap.areaOutlineColor
			area.OutlineWidth = snap.areaOutlineWidth
		}
	}
	if snap.hasPoint {
		if point := e.Point(); point != nil {
			point.Color = snap.pointColor
			point.OutlineColor = snap.pointOutlineColor
			point.PixelSize = snap.pointPixelSize
		}
	}
	if snap.hasMarker {
		if marker := e.Marker(); marker != nil {
			marker.Color = snap.markerColor
			marker.Scale = snap.markerScale
		}
	}
	delete(s.snaps, e.ID())
}

// Drop discards the snapshot for an entity identifier without restoring it.
// Used when a tracked entity has left the scene and there is nothing left to
// restore onto; without this the stale snapshot would pin the invariant that
// a snapshot implies an active override.
func (s *SnapshotStore) Drop(id string) {
	delete(s.snaps, id)
}

// Has reports whether the entity identifier currently carries an active
// override.
func (s *SnapshotStore) Has(id string) bool {
	_, ok := s.snaps[id]
	return ok
}

// Len returns the number of entities currently under override.
func (s *SnapshotStore) Len() int { return len(s.snaps) }
