package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDUsesCanonicalPrefix(t *testing.T) {
	assert.Equal(t, "target:42", EntityID(KindTarget, "42"))
	assert.Equal(t, "acq:17", EntityID(KindAcquisition, "17"))
	assert.Equal(t, "swath:9", EntityID(KindSwath, "9"))
}

func TestEntityIDUnknownKindFallsBackToColonForm(t *testing.T) {
	assert.Equal(t, "orbit:3", EntityID(Kind("orbit"), "3"))
}

func TestGhostEntityIDWrapsFullIdentifier(t *testing.T) {
	assert.Equal(t, "ghost:acq:5", GhostEntityID("acq:5"))
	assert.Equal(t, "ghost:target_42", GhostEntityID("target_42"))
}

func TestPrefixesCoverEveryRegisteredForm(t *testing.T) {
	got := Prefixes()
	for _, want := range []string{
		"target:", "target_", "tgt_",
		"acq:", "acq_", "opp_", "acquisition_",
		"swath:", "swath_",
		"ghost:", "ghost_",
	} {
		assert.Contains(t, got, want)
	}
}

func TestSchemesReturnsCopy(t *testing.T) {
	first := Schemes()
	require.NotEmpty(t, first)
	first[0].Canonical = "mutated:"

	assert.Equal(t, "target:", Schemes()[0].Canonical)
}
