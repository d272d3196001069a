package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorsForRepairDiffTypes(t *testing.T) {
	seen := map[DiffType]struct{}{}
	for _, diff := range []DiffType{DiffKept, DiffDropped, DiffAdded, DiffMoved} {
		triple := ColorsFor(ModeRepair, diff)
		assert.NotEqual(t, selectionColors, triple, "diff %q must have its own triple", diff)
		seen[diff] = struct{}{}
	}
	assert.Len(t, seen, 4)
}

func TestColorsForConflict(t *testing.T) {
	assert.Equal(t, conflictColors, ColorsFor(ModeConflict, ""))
	// A diff type on a non-repair mode is ignored.
	assert.Equal(t, conflictColors, ColorsFor(ModeConflict, DiffMoved))
}

func TestColorsForFallsBackToSelection(t *testing.T) {
	assert.Equal(t, selectionColors, ColorsFor(ModeSelection, ""))
	assert.Equal(t, selectionColors, ColorsFor(ModeRepair, ""), "repair without diff type")
	assert.Equal(t, selectionColors, ColorsFor(ModeRepair, DiffType("bogus")))
	assert.Equal(t, selectionColors, ColorsFor(Mode("bogus"), ""))
}

func TestGhostColorsAreNotAModePalette(t *testing.T) {
	for _, mode := range []Mode{ModeConflict, ModeSelection, ModeRepair} {
		for _, diff := range []DiffType{"", DiffKept, DiffDropped, DiffAdded, DiffMoved} {
			assert.NotEqual(t, GhostColors, ColorsFor(mode, diff))
		}
	}
}

func TestFillColorsAreTranslucent(t *testing.T) {
	checks := map[string]DiffType{"kept": DiffKept, "dropped": DiffDropped, "added": DiffAdded, "moved": DiffMoved}
	for name, diff := range checks {
		triple := ColorsFor(ModeRepair, diff)
		assert.Less(t, triple.Fill.A, 1.0, "repair %s fill should be translucent", name)
		assert.Equal(t, 1.0, triple.Outline.A, "repair %s outline should be opaque", name)
	}
	assert.Less(t, ColorsFor(ModeConflict, "").Fill.A, 1.0)
	assert.Less(t, ColorsFor(ModeSelection, "").Fill.A, 1.0)
	assert.Less(t, GhostColors.Fill.A, 1.0)
}
