package memscene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/pkg/errors"
	"github.com/panos-dim/missionviz/pkg/types/visual"
)

// Fixture is the on-disk JSON shape for a mission scene: one primary
// collection plus any number of secondary collections.  Fixtures exist for
// the CLI and control server; the engine core never reads files.
type Fixture struct {
	Name      string              `json:"name"`
	Primary   FixtureCollection   `json:"primary"`
	Secondary []FixtureCollection `json:"secondary,omitempty"`
}

// FixtureCollection is one named entity collection in a fixture.
type FixtureCollection struct {
	Name     string          `json:"name"`
	Entities []FixtureEntity `json:"entities"`
}

// FixtureEntity is the JSON shape of one entity.  Geometry sub-objects are
// independently optional, matching the scene port.
type FixtureEntity struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties,omitempty"`
	Position   *visual.Position  `json:"position,omitempty"`
	Area       *FixtureArea      `json:"area,omitempty"`
	Point      *FixturePoint     `json:"point,omitempty"`
	Marker     *FixtureMarker    `json:"marker,omitempty"`
}

// FixtureArea mirrors scene.AreaGraphics with JSON tags.
type FixtureArea struct {
	Hierarchy    []visual.Position `json:"hierarchy"`
	Material     visual.Color      `json:"material"`
	Outline      bool              `json:"outline"`
	OutlineColor visual.Color      `json:"outlineColor"`
	OutlineWidth float64           `json:"outlineWidth"`
}

// FixturePoint mirrors scene.PointGraphics with JSON tags.
type FixturePoint struct {
	Color        visual.Color `json:"color"`
	OutlineColor visual.Color `json:"outlineColor"`
	PixelSize    float64      `json:"pixelSize"`
}

// FixtureMarker mirrors scene.MarkerGraphics with JSON tags.
type FixtureMarker struct {
	Image string       `json:"image"`
	Color visual.Color `json:"color"`
	Scale float64      `json:"scale"`
}

// LoadFixture reads and validates the fixture at path and materialises it
// into a fresh in-memory viewer.
func LoadFixture(path string) (*Viewer, error) {
	fx, err := readFixture(path)
	if err != nil {
		return nil, err
	}

	primary, err := buildCollection(fx.Primary, "primary")
	if err != nil {
		return nil, err
	}
	secondary := make([]*Collection, 0, len(fx.Secondary))
	for i, fc := range fx.Secondary {
		c, err := buildCollection(fc, fmt.Sprintf("secondary[%d]", i))
		if err != nil {
			return nil, err
		}
		secondary = append(secondary, c)
	}
	return NewViewer(primary, secondary...), nil
}

// ReloadFixture re-reads the fixture at path and replaces the viewer's
// collection contents in place.  Entity references held elsewhere become
// stale, which is why callers pair a reload with an engine cache
// invalidation.
func (v *Viewer) ReloadFixture(path string) error {
	fx, err := readFixture(path)
	if err != nil {
		return err
	}

	primary, err := buildCollection(fx.Primary, "primary")
	if err != nil {
		return err
	}
	secondary := make([]*Collection, 0, len(fx.Secondary))
	for i, fc := range fx.Secondary {
		c, err := buildCollection(fc, fmt.Sprintf("secondary[%d]", i))
		if err != nil {
			return err
		}
		secondary = append(secondary, c)
	}

	*v.primary = *primary
	v.secondary = secondary
	return nil
}

func readFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFixtureUnreadable, "failed to read scene fixture").
			WithDetail("path=" + path)
	}
	fx := &Fixture{}
	if err := json.Unmarshal(raw, fx); err != nil {
		return nil, errors.Wrap(err, errors.CodeFixtureInvalid, "failed to parse scene fixture").
			WithDetail("path=" + path)
	}
	return fx, nil
}

func buildCollection(fc FixtureCollection, fallbackName string) (*Collection, error) {
	name := fc.Name
	if name == "" {
		name = fallbackName
	}
	c := NewCollection(name)
	for i, fe := range fc.Entities {
		t := scene.Template{
			ID:         fe.ID,
			Properties: fe.Properties,
			Position:   fe.Position,
		}
		if fe.Point != nil {
			t.Point = &scene.PointGraphics{
				Color:        fe.Point.Color,
				OutlineColor: fe.Point.OutlineColor,
				PixelSize:    fe.Point.PixelSize,
			}
		}
		if fe.Marker != nil {
			t.Marker = &scene.MarkerGraphics{
				Image: fe.Marker.Image,
				Color: fe.Marker.Color,
				Scale: fe.Marker.Scale,
			}
		}
		if fe.Area != nil {
			t.Area = &scene.AreaGraphics{
				Hierarchy:    fe.Area.Hierarchy,
				Material:     fe.Area.Material,
				Outline:      fe.Area.Outline,
				OutlineColor: fe.Area.OutlineColor,
				OutlineWidth: fe.Area.OutlineWidth,
			}
		}
		if _, err := c.Add(t); err != nil {
			return nil, errors.Wrap(err, errors.CodeFixtureInvalid, "fixture rejected").
				WithDetail(fmt.Sprintf("collection=%s index=%d", name, i))
		}
	}
	return c, nil
}
