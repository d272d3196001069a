// Package ident defines the logical-identifier naming scheme shared between
// upstream selection logic and the highlight engine's pattern builder.
//
// A scene accumulates entities from several independently-loaded collections,
// each of which historically used its own identifier convention.  The
// canonical scheme is the colon form ("target:42", "acq:17"); legacy loaders
// produced underscore and abbreviated forms ("target_42", "opp_17") that are
// still present in live scenes.  Selection logic should construct identifiers
// exclusively through EntityID and GhostEntityID so that new identifiers
// always follow the canonical scheme; the engine's pattern builder accepts
// every registered form when matching.
package ident

// Kind classifies the logical domains whose entities the engine resolves.
type Kind string

const (
	KindTarget      Kind = "target"
	KindAcquisition Kind = "acq"
	KindSwath       Kind = "swath"
	KindGhost       Kind = "ghost"
)

// Scheme describes every on-entity identifier prefix known for one Kind:
// the canonical colon form plus zero or more legacy forms still found in
// loaded scenes.
type Scheme struct {
	Kind      Kind
	Canonical string
	Legacy    []string
}

// schemes is the fixed registry of identifier conventions.  Order is
// stable so that derived pattern sets and tests are deterministic.
var schemes = []Scheme{
	{Kind: KindTarget, Canonical: "target:", Legacy: []string{"target_", "tgt_"}},
	{Kind: KindAcquisition, Canonical: "acq:", Legacy: []string{"acq_", "opp_", "acquisition_"}},
	{Kind: KindSwath, Canonical: "swath:", Legacy: []string{"swath_"}},
	{Kind: KindGhost, Canonical: "ghost:", Legacy: []string{"ghost_"}},
}

// Schemes returns the registered identifier schemes.  The returned slice is
// a copy; mutating it does not affect the registry.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// Prefixes returns every known prefix (canonical first, then legacy) across
// all registered kinds.
func Prefixes() []string {
	var out []string
	for _, s := range schemes {
		out = append(out, s.Canonical)
		out = append(out, s.Legacy...)
	}
	return out
}

// EntityID builds the canonical on-entity identifier for a logical
// identifier of the given kind, e.g. EntityID(KindTarget, "42") == "target:42".
// Unknown kinds fall back to the colon convention using the kind verbatim.
func EntityID(kind Kind, id string) string {
	for _, s := range schemes {
		if s.Kind == kind {
			return s.Canonical + id
		}
	}
	return string(kind) + ":" + id
}

// GhostEntityID builds the canonical identifier for the ghost counterpart of
// a logical identifier, e.g. GhostEntityID("acq:5") == "ghost:acq:5".
func GhostEntityID(id string) string {
	return EntityID(KindGhost, id)
}
