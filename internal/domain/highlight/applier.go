package highlight

import (
	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// StyleParams are the fixed magnitudes the applier writes alongside the
// palette colors, and the sizing of synthesized ghost clones.
type StyleParams struct {
	// OutlineWidth is written to area outlines under override.
	OutlineWidth float64 `mapstructure:"outline_width"`

	// PointPixelSize is written to point markers under override.
	PointPixelSize float64 `mapstructure:"point_pixel_size"`

	// MarkerScale is written to billboard markers under override.
	MarkerScale float64 `mapstructure:"marker_scale"`

	// GhostMarkerAlphaScale multiplies the ghost glow alpha for cloned
	// billboard markers, rendering the prior state visibly faded.
	GhostMarkerAlphaScale float64 `mapstructure:"ghost_marker_alpha_scale"`
}

// DefaultStyleParams returns the standard magnitudes.
func DefaultStyleParams() StyleParams {
	return StyleParams{
		OutlineWidth:          3,
		PointPixelSize:        14,
		MarkerScale:           1.4,
		GhostMarkerAlphaScale: 0.45,
	}
}

// sanitize fills non-positive fields with defaults so a partially-populated
// config cannot produce invisible styling.
func (p StyleParams) sanitize() StyleParams {
	def := DefaultStyleParams()
	if p.OutlineWidth <= 0 {
		p.OutlineWidth = def.OutlineWidth
	}
	if p.PointPixelSize <= 0 {
		p.PointPixelSize = def.PointPixelSize
	}
	if p.MarkerScale <= 0 {
		p.MarkerScale = def.MarkerScale
	}
	if p.GhostMarkerAlphaScale <= 0 {
		p.GhostMarkerAlphaScale = def.GhostMarkerAlphaScale
	}
	return p
}

// Applier writes override styles to resolved entity sets and reverts them
// through the snapshot store.  Every geometry kind is independently optional:
// an entity lacking a kind is simply skipped for that kind.
type Applier struct {
	snapshots *SnapshotStore
	params    StyleParams
}

// NewApplier creates an Applier over the given snapshot store.
func NewApplier(snapshots *SnapshotStore, params StyleParams) *Applier {
	return &Applier{
		snapshots: snapshots,
		params:    params.sanitize(),
	}
}

// Apply captures each entity's current styling, then overwrites it with the
// palette: area fill and outline, point color/outline/size, billboard marker
// color/scale.  Safe to call with an empty set.
func (a *Applier) Apply(entities []scene.Entity, colors visual.ColorTriple) {
	for _, e := range entities {
		a.snapshots.Capture(e)

		if area := e.Area(); area != nil {
			area.Material = colors.Fill
			area.Outline = true
			area.OutlineColor = colors.Outline
			area.OutlineWidth = a.params.OutlineWidth
		}
		if point := e.Point(); point != nil {
			point.Color = colors.Fill
			point.OutlineColor = colors.Outline
			point.PixelSize = a.params.PointPixelSize
		}
		if marker := e.Marker(); marker != nil {
			marker.Color = colors.Glow
			marker.Scale = a.params.MarkerScale
		}
	}
}

// Clear restores each entity to its captured state.  Entities without a
// snapshot are untouched, so clearing an empty or already-cleared set is a
// no-op.
func (a *Applier) Clear(entities []scene.Entity) {
	for _, e := range entities {
		a.snapshots.Restore(e)
	}
}
