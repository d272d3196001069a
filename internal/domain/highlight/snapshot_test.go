package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/domain/scene/memscene"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// fullEntity builds an entity carrying every geometry kind.
func fullEntity(t *testing.T) scene.Entity {
	t.Helper()
	c := memscene.NewCollection("mission")
	pos := visual.Position{Lon: 5, Lat: 6}
	return addEntity(t, c, scene.Template{
		ID:       "acq:9",
		Position: &pos,
		Area: &scene.AreaGraphics{
			Hierarchy:    []visual.Position{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 1}, {Lon: 2, Lat: 2}},
			Material:     visual.RGBA(0.1, 0.2, 0.3, 0.4),
			Outline:      false,
			OutlineColor: visual.RGB(0.4, 0.4, 0.4),
			OutlineWidth: 1.5,
		},
		Point: &scene.PointGraphics{
			Color:        visual.RGB(0.7, 0.2, 0.2),
			OutlineColor: visual.RGB(0, 0, 0),
			PixelSize:    9,
		},
		Marker: &scene.MarkerGraphics{
			Image: "acq.png",
			Color: visual.RGB(1, 1, 1),
			Scale: 1.1,
		},
	})
}

func TestCaptureRestoreRoundTripAllKinds(t *testing.T) {
	e := fullEntity(t)
	origArea := *e.Area()
	origPoint := *e.Point()
	origMarker := *e.Marker()

	store := NewSnapshotStore()
	store.Capture(e)

	// Mutate everything the engine is allowed to touch.
	e.Area().Material = visual.RGB(1, 0, 0)
	e.Area().Outline = true
	e.Area().OutlineColor = visual.RGB(0, 1, 0)
	e.Area().OutlineWidth = 99
	e.Point().Color = visual.RGB(0, 0, 1)
	e.Point().OutlineColor = visual.RGB(1, 1, 0)
	e.Point().PixelSize = 77
	e.Marker().Color = visual.RGB(0.5, 0.5, 0.5)
	e.Marker().Scale = 9

	store.Restore(e)

	assert.Equal(t, origArea.Material, e.Area().Material)
	assert.Equal(t, origArea.Outline, e.Area().Outline)
	assert.Equal(t, origArea.OutlineColor, e.Area().OutlineColor)
	assert.Equal(t, origArea.OutlineWidth, e.Area().OutlineWidth)
	assert.Equal(t, origPoint, *e.Point())
	assert.Equal(t, origMarker.Color, e.Marker().Color)
	assert.Equal(t, origMarker.Scale, e.Marker().Scale)
	assert.False(t, store.Has(e.ID()), "restore must delete the snapshot")
}

func TestCaptureIsIdempotent(t *testing.T) {
	e := fullEntity(t)
	store := NewSnapshotStore()

	store.Capture(e)
	preOverride := e.Point().Color

	// Mutate, then capture again: the second capture must not overwrite the
	// stored pre-override state.
	e.Point().Color = visual.RGB(0, 0, 0)
	store.Capture(e)
	store.Restore(e)

	assert.Equal(t, preOverride, e.Point().Color)
}

func TestRestoreWithoutSnapshotIsNoop(t *testing.T) {
	e := fullEntity(t)
	before := *e.Point()

	store := NewSnapshotStore()
	store.Restore(e)

	assert.Equal(t, before, *e.Point())
	assert.Zero(t, store.Len())
}

func TestSnapshotOnlyCoversPresentKinds(t *testing.T) {
	c := memscene.NewCollection("mission")
	e := addPointEntity(t, c, "acq:1")
	require.Nil(t, e.Area())

	store := NewSnapshotStore()
	store.Capture(e)
	e.Point().PixelSize = 55
	store.Restore(e)

	assert.Equal(t, float64(8), e.Point().PixelSize)
}

func TestSnapshotInvariantExistsIffUnderOverride(t *testing.T) {
	e := fullEntity(t)
	store := NewSnapshotStore()

	assert.False(t, store.Has(e.ID()))
	store.Capture(e)
	assert.True(t, store.Has(e.ID()))
	store.Restore(e)
	assert.False(t, store.Has(e.ID()))
}

func TestSnapshotDrop(t *testing.T) {
	e := fullEntity(t)
	store := NewSnapshotStore()
	store.Capture(e)

	store.Drop(e.ID())

	assert.False(t, store.Has(e.ID()))
	assert.Zero(t, store.Len())
}

func TestSnapshotNilEntity(t *testing.T) {
	store := NewSnapshotStore()
	store.Capture(nil)
	store.Restore(nil)
	assert.Zero(t, store.Len())
}
