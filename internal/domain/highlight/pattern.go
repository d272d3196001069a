package highlight

import (
	"strings"

	"github.com/panos-dim/missionviz/pkg/types/ident"
)

// PatternSet is the full set of acceptable on-entity identifier strings
// derived from a batch of logical identifiers: every known prefix of every
// registered kind concatenated with every identifier, plus each raw
// identifier unprefixed.
type PatternSet map[string]struct{}

// Contains reports whether s is in the set.
func (p PatternSet) Contains(s string) bool {
	_, ok := p[s]
	return ok
}

// BuildPatternSet expands logicalIDs into the candidate on-entity identifier
// strings the matcher accepts.
//
// Callers frequently pass a bare identifier without a type tag, so expansion
// is deliberately over-generous: every identifier is combined with every
// registered prefix even though at most one kind can be its true domain.
// The extra candidates cost a few map entries and keep the matcher a plain
// lookup; they can never cause a false positive against a well-formed scene
// because identifiers are unique within it.  No input validation is
// performed; duplicates collapse by set semantics.
func BuildPatternSet(logicalIDs []string) PatternSet {
	prefixes := ident.Prefixes()
	set := make(PatternSet, len(logicalIDs)*(len(prefixes)+1))
	for _, id := range logicalIDs {
		set[id] = struct{}{}
		for _, prefix := range prefixes {
			set[prefix+id] = struct{}{}
		}
	}
	return set
}

// domainSeparators are the characters that mark a pattern as scheme-qualified.
// Substring matching in the fallback scan is restricted to such patterns so
// that a short bare identifier like "1" cannot collide with unrelated
// entities ("target:11", "swath:21", ...).
const domainSeparators = ":_"

// hasDomainSeparator reports whether the pattern contains a separator
// character and is therefore safe for contains-matching.
func hasDomainSeparator(pattern string) bool {
	return strings.ContainsAny(pattern, domainSeparators)
}
