// Package highlight implements the entity resolution and highlight styling
// engine: it maps logical domain identifiers ("target:42", "acq:17") to the
// concrete visual entities currently representing them across several
// mutually-inconsistent naming conventions, applies and losslessly reverts
// style overrides for the supported highlight modes, and manages the
// short-lived ghost clone entities that visualize a moved item's prior state.
//
// The engine is synchronous and single-threaded by design: every operation is
// an ordinary function call on the host UI thread, performs no I/O, and never
// blocks.  One Engine instance owns all mutable state (entity cache, style
// snapshots, ghost registry) for one scene viewer; callers needing to drive
// the engine from multiple goroutines must serialize access themselves.
package highlight

import "github.com/panos-dim/missionviz/pkg/errors"

// Mode selects the highlight palette family.
type Mode string

const (
	ModeConflict  Mode = "conflict"
	ModeRepair    Mode = "repair"
	ModeSelection Mode = "selection"
)

// Valid reports whether m is a recognised highlight mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeConflict, ModeRepair, ModeSelection:
		return true
	}
	return false
}

// DiffType refines ModeRepair with the repair-diff classification of the
// highlighted items.
type DiffType string

const (
	DiffKept    DiffType = "kept"
	DiffDropped DiffType = "dropped"
	DiffAdded   DiffType = "added"
	DiffMoved   DiffType = "moved"
)

// Valid reports whether d is a recognised diff type.  The empty value is not
// valid; absence is expressed by leaving Request.DiffType empty, which the
// color policy treats as the selection palette.
func (d DiffType) Valid() bool {
	switch d {
	case DiffKept, DiffDropped, DiffAdded, DiffMoved:
		return true
	}
	return false
}

// Request is the sole input shape of the engine: which logical identifiers to
// highlight, in which mode, and optionally which ghost identifiers to
// resolve or synthesize alongside them.
type Request struct {
	Mode     Mode     `json:"mode"`
	IDs      []string `json:"ids"`
	DiffType DiffType `json:"diffType,omitempty"`
	GhostIDs []string `json:"ghostIds,omitempty"`
}

// Validate checks the request's enumerated fields.  The engine itself is
// lenient (an unknown mode degrades to the selection palette, per the color
// policy); Validate exists for the interfaces layer, which rejects malformed
// requests before they reach the engine.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return errors.New(errors.ErrCodeHighlightModeInvalid, "unknown highlight mode").
			WithDetail("mode=" + string(r.Mode))
	}
	if r.DiffType != "" && !r.DiffType.Valid() {
		return errors.New(errors.ErrCodeDiffTypeInvalid, "unknown diff type").
			WithDetail("diffType=" + string(r.DiffType))
	}
	return nil
}
