package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/domain/scene/memscene"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

func newGhostFixture(t *testing.T) (*memscene.Viewer, *memscene.Collection, *GhostManager) {
	t.Helper()
	primary := memscene.NewCollection("mission")
	viewer := memscene.NewViewer(primary)
	return viewer, primary, NewGhostManager(viewer, DefaultStyleParams(), nil, nil)
}

func TestEnsureReturnsExistingEntityUnregistered(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	existing := addPointEntity(t, primary, "ghost:acq:5")
	source := addPointEntity(t, primary, "acq:5")

	got := mgr.Ensure(source, "ghost:acq:5")

	assert.Same(t, existing, got)
	assert.False(t, mgr.Owned("ghost:acq:5"), "pre-existing ghosts are host-owned")
}

func TestEnsureSynthesizesPointGhost(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	source := addPointEntity(t, primary, "acq:5")
	srcPos, _ := source.Position()

	clone := mgr.Ensure(source, "ghost:acq:5")

	require.NotNil(t, clone)
	assert.Equal(t, "ghost:acq:5", clone.ID())
	pos, ok := clone.Position()
	require.True(t, ok)
	assert.Equal(t, srcPos, pos)
	require.NotNil(t, clone.Point())
	assert.Equal(t, GhostColors.Fill, clone.Point().Color)
	assert.Equal(t, GhostColors.Outline, clone.Point().OutlineColor)
	assert.True(t, mgr.Owned("ghost:acq:5"))

	_, inScene := primary.ByID("ghost:acq:5")
	assert.True(t, inScene)
}

func TestEnsureSynthesizesAreaGhost(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	source := addAreaEntity(t, primary, "target:3")

	clone := mgr.Ensure(source, "ghost:target:3")

	require.NotNil(t, clone)
	require.NotNil(t, clone.Area())
	assert.Equal(t, source.Area().Hierarchy, clone.Area().Hierarchy)
	assert.Equal(t, GhostColors.Fill, clone.Area().Material)
	assert.True(t, clone.Area().Outline)
}

func TestEnsureSynthesizesFadedMarkerGhost(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	source := addMarkerEntity(t, primary, "acq:8")

	clone := mgr.Ensure(source, "ghost:acq:8")

	require.NotNil(t, clone)
	require.NotNil(t, clone.Marker())
	assert.Equal(t, "satellite.png", clone.Marker().Image)
	want := GhostColors.Glow.ScaleAlpha(DefaultStyleParams().GhostMarkerAlphaScale)
	assert.Equal(t, want, clone.Marker().Color)
	assert.Equal(t, DefaultStyleParams().MarkerScale, clone.Marker().Scale)
}

func TestEnsureNothingClonableReturnsNil(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	bare := addEntity(t, primary, scene.Template{ID: "bare"})

	clone := mgr.Ensure(bare, "ghost:bare")

	assert.Nil(t, clone)
	assert.False(t, mgr.Owned("ghost:bare"))
	_, inScene := primary.ByID("ghost:bare")
	assert.False(t, inScene)
}

func TestEnsureDedupNeverDoublesRegistry(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	source := addPointEntity(t, primary, "acq:5")

	first := mgr.Ensure(source, "ghost:acq:5")
	second := mgr.Ensure(source, "ghost:acq:5")

	assert.Same(t, first, second)
	assert.Equal(t, []string{"ghost:acq:5"}, mgr.RegisteredIDs())
}

func TestRemoveOnlyDeletesEngineOwned(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	// Host-owned entity without the ghost marker must survive Remove.
	addPointEntity(t, primary, "ghost:host")

	mgr.Remove("ghost:host")

	_, still := primary.ByID("ghost:host")
	assert.True(t, still, "host-owned entity must never be deleted")
}

func TestRemoveDeletesMarkedEntityEvenIfUnregistered(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	pos := visual.Position{Lon: 1, Lat: 1}
	addEntity(t, primary, scene.Template{
		ID:         "ghost:orphan",
		Position:   &pos,
		Point:      &scene.PointGraphics{Color: GhostColors.Fill, PixelSize: 10},
		Properties: map[string]string{"missionviz_ghost": "true"},
	})

	// e.g. a clone surviving from a manager that was torn down.
	mgr.Remove("ghost:orphan")

	_, still := primary.ByID("ghost:orphan")
	assert.False(t, still)
}

func TestRemoveAllClearsOnlyRegistry(t *testing.T) {
	_, primary, mgr := newGhostFixture(t)
	hostGhost := addPointEntity(t, primary, "ghost:host")
	source := addPointEntity(t, primary, "acq:1")
	mgr.Ensure(source, "ghost:acq:1")
	mgr.Ensure(source, "ghost:acq:1b")

	mgr.RemoveAll()

	assert.Empty(t, mgr.RegisteredIDs())
	_, a := primary.ByID("ghost:acq:1")
	_, b := primary.ByID("ghost:acq:1b")
	assert.False(t, a)
	assert.False(t, b)
	got, still := primary.ByID("ghost:host")
	assert.True(t, still)
	assert.Same(t, hostGhost, got)
}

func TestGhostManagerNilViewer(t *testing.T) {
	mgr := NewGhostManager(nil, DefaultStyleParams(), nil, nil)
	assert.Nil(t, mgr.Ensure(nil, "ghost:x"))
	mgr.Remove("ghost:x")
	mgr.RemoveAll()
	assert.Empty(t, mgr.RegisteredIDs())
}
