package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/domain/scene/memscene"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// Test fixture helpers shared across the package tests.  Entities are built
// through the in-memory scene host so that the engine is exercised against
// the same port implementation the CLI and server use.

func addEntity(t *testing.T, c *memscene.Collection, tpl scene.Template) scene.Entity {
	t.Helper()
	e, err := c.Add(tpl)
	require.NoError(t, err)
	return e
}

func addAreaEntity(t *testing.T, c *memscene.Collection, id string) scene.Entity {
	t.Helper()
	return addEntity(t, c, scene.Template{
		ID: id,
		Area: &scene.AreaGraphics{
			Hierarchy: []visual.Position{
				{Lon: 23.7, Lat: 37.9},
				{Lon: 23.8, Lat: 37.9},
				{Lon: 23.8, Lat: 38.0},
			},
			Material:     visual.RGBA(0.1, 0.2, 0.3, 0.4),
			Outline:      false,
			OutlineColor: visual.RGB(0.5, 0.5, 0.5),
			OutlineWidth: 1,
		},
	})
}

func addPointEntity(t *testing.T, c *memscene.Collection, id string) scene.Entity {
	t.Helper()
	pos := visual.Position{Lon: 23.7, Lat: 37.9, Height: 500}
	return addEntity(t, c, scene.Template{
		ID:       id,
		Position: &pos,
		Point: &scene.PointGraphics{
			Color:        visual.RGB(0.9, 0.9, 0.1),
			OutlineColor: visual.RGB(0, 0, 0),
			PixelSize:    8,
		},
	})
}

func addMarkerEntity(t *testing.T, c *memscene.Collection, id string) scene.Entity {
	t.Helper()
	pos := visual.Position{Lon: 10, Lat: 20}
	return addEntity(t, c, scene.Template{
		ID:       id,
		Position: &pos,
		Marker: &scene.MarkerGraphics{
			Image: "satellite.png",
			Color: visual.RGB(1, 1, 1),
			Scale: 1,
		},
	})
}

func addPropEntity(t *testing.T, c *memscene.Collection, id string, props map[string]string) scene.Entity {
	t.Helper()
	pos := visual.Position{Lon: 1, Lat: 2}
	return addEntity(t, c, scene.Template{
		ID:         id,
		Position:   &pos,
		Properties: props,
		Point: &scene.PointGraphics{
			Color:     visual.RGB(1, 0, 0),
			PixelSize: 6,
		},
	})
}

func entityIDs(entities []scene.Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ID())
	}
	return out
}
