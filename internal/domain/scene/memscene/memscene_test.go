package memscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/pkg/errors"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

func TestAddAssignsUUIDWhenIDEmpty(t *testing.T) {
	c := NewCollection("mission")

	e, err := c.Add(scene.Template{})

	require.NoError(t, err)
	assert.NotEmpty(t, e.ID())
	_, ok := c.ByID(e.ID())
	assert.True(t, ok)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	c := NewCollection("mission")
	_, err := c.Add(scene.Template{ID: "acq:1"})
	require.NoError(t, err)

	_, err = c.Add(scene.Template{ID: "acq:1"})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEntityExists))
	assert.Equal(t, 1, c.Len())
}

func TestAddCopiesTemplateGraphics(t *testing.T) {
	c := NewCollection("mission")
	area := scene.AreaGraphics{
		Hierarchy: []visual.Position{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}},
		Material:  visual.RGB(0.1, 0.1, 0.1),
	}
	point := scene.PointGraphics{Color: visual.RGB(1, 0, 0), PixelSize: 8}
	pos := visual.Position{Lon: 9, Lat: 9}

	e, err := c.Add(scene.Template{ID: "acq:1", Position: &pos, Area: &area, Point: &point})
	require.NoError(t, err)

	// Mutating the template after Add must not reach the entity.
	area.Material = visual.RGB(1, 1, 1)
	area.Hierarchy[0] = visual.Position{Lon: 99, Lat: 99}
	point.PixelSize = 99
	pos.Lon = 99

	assert.Equal(t, visual.RGB(0.1, 0.1, 0.1), e.Area().Material)
	assert.Equal(t, visual.Position{Lon: 1, Lat: 1}, e.Area().Hierarchy[0])
	assert.Equal(t, float64(8), e.Point().PixelSize)
	got, ok := e.Position()
	require.True(t, ok)
	assert.Equal(t, float64(9), got.Lon)
}

func TestPropertiesNilWhenAbsent(t *testing.T) {
	c := NewCollection("mission")
	bare, err := c.Add(scene.Template{ID: "bare"})
	require.NoError(t, err)
	tagged, err := c.Add(scene.Template{ID: "tagged", Properties: map[string]string{"target_id": "7"}})
	require.NoError(t, err)

	assert.Nil(t, bare.Properties())

	props := tagged.Properties()
	require.NotNil(t, props)
	v, ok := props.String("target_id")
	assert.True(t, ok)
	assert.Equal(t, "7", v)
	_, ok = props.String("missing")
	assert.False(t, ok)
}

func TestEachFollowsInsertionOrderAndStops(t *testing.T) {
	c := NewCollection("mission")
	for _, id := range []string{"c", "a", "b"} {
		_, err := c.Add(scene.Template{ID: id})
		require.NoError(t, err)
	}

	var seen []string
	c.Each(func(e scene.Entity) bool {
		seen = append(seen, e.ID())
		return true
	})
	assert.Equal(t, []string{"c", "a", "b"}, seen)

	seen = nil
	c.Each(func(e scene.Entity) bool {
		seen = append(seen, e.ID())
		return len(seen) < 2
	})
	assert.Equal(t, []string{"c", "a"}, seen)
}

func TestRemove(t *testing.T) {
	c := NewCollection("mission")
	_, err := c.Add(scene.Template{ID: "acq:1"})
	require.NoError(t, err)

	assert.True(t, c.Remove("acq:1"))
	assert.False(t, c.Remove("acq:1"), "second remove reports absence")
	assert.Zero(t, c.Len())

	var seen int
	c.Each(func(scene.Entity) bool { seen++; return true })
	assert.Zero(t, seen, "removed entity must not be iterated")
}

func TestClear(t *testing.T) {
	c := NewCollection("mission")
	for _, id := range []string{"a", "b"} {
		_, err := c.Add(scene.Template{ID: id})
		require.NoError(t, err)
	}

	c.Clear()

	assert.Zero(t, c.Len())
	_, ok := c.ByID("a")
	assert.False(t, ok)

	// Collection stays usable after Clear.
	_, err := c.Add(scene.Template{ID: "a"})
	assert.NoError(t, err)
}

func TestViewerCollectionsAndRenderCounter(t *testing.T) {
	primary := NewCollection("primary")
	sec := NewCollection("overlay")
	v := NewViewer(primary, sec)

	assert.Same(t, primary, v.PrimaryCollection())
	require.Len(t, v.Secondary(), 1)
	assert.Equal(t, "overlay", v.SecondaryCollections()[0].Name())

	assert.Zero(t, v.RenderRequests())
	v.RequestRender()
	v.RequestRender()
	assert.EqualValues(t, 2, v.RenderRequests())
}

func TestNewViewerNilPrimary(t *testing.T) {
	v := NewViewer(nil)
	require.NotNil(t, v.Primary())
	assert.Zero(t, scene.EntityCount(v))
}
