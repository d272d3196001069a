package highlight

import "github.com/panos-dim/missionviz/pkg/types/visual"

// Palette constants.  Fill colors are semi-transparent so underlying imagery
// stays readable; outlines are opaque for contrast at any zoom level.
var (
	conflictColors = visual.ColorTriple{
		Fill:    visual.RGBA(0.93, 0.26, 0.21, 0.45),
		Outline: visual.RGB(1.00, 0.17, 0.13),
		Glow:    visual.RGB(1.00, 0.45, 0.40),
	}

	selectionColors = visual.ColorTriple{
		Fill:    visual.RGBA(0.00, 0.78, 1.00, 0.35),
		Outline: visual.RGB(0.00, 0.90, 1.00),
		Glow:    visual.RGB(0.60, 0.95, 1.00),
	}

	repairColors = map[DiffType]visual.ColorTriple{
		DiffKept: {
			Fill:    visual.RGBA(0.30, 0.69, 0.31, 0.40),
			Outline: visual.RGB(0.22, 0.80, 0.25),
			Glow:    visual.RGB(0.55, 0.90, 0.55),
		},
		DiffDropped: {
			Fill:    visual.RGBA(0.62, 0.62, 0.62, 0.35),
			Outline: visual.RGB(0.85, 0.33, 0.31),
			Glow:    visual.RGB(0.80, 0.80, 0.80),
		},
		DiffAdded: {
			Fill:    visual.RGBA(0.25, 0.47, 0.96, 0.40),
			Outline: visual.RGB(0.20, 0.55, 1.00),
			Glow:    visual.RGB(0.55, 0.75, 1.00),
		},
		DiffMoved: {
			Fill:    visual.RGBA(1.00, 0.60, 0.00, 0.40),
			Outline: visual.RGB(1.00, 0.70, 0.10),
			Glow:    visual.RGB(1.00, 0.82, 0.45),
		},
	}
)

// GhostColors is the fixed palette for ghost entities (prior-state clones).
// It is never looked up through ColorsFor: ghost styling is not a highlight
// mode, it is the identity of the clone itself.
var GhostColors = visual.ColorTriple{
	Fill:    visual.RGBA(0.58, 0.58, 0.64, 0.25),
	Outline: visual.RGBA(0.75, 0.75, 0.80, 0.90),
	Glow:    visual.RGBA(0.80, 0.80, 0.85, 1.00),
}

// ColorsFor returns the (fill, outline, glow) triple for a mode and optional
// diff type.  Repair with a known diff type yields the diff-specific triple;
// conflict yields the conflict triple; everything else (selection, repair
// without a diff type, any unknown mode) yields the selection triple.
func ColorsFor(mode Mode, diff DiffType) visual.ColorTriple {
	if mode == ModeRepair {
		if c, ok := repairColors[diff]; ok {
			return c
		}
		return selectionColors
	}
	if mode == ModeConflict {
		return conflictColors
	}
	return selectionColors
}
