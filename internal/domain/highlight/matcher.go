package highlight

import (
	"strings"

	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	prom "github.com/panos-dim/missionviz/internal/infrastructure/monitoring/prometheus"
)

// attributeKeys are the entity attributes consulted by the fallback scan.
// Some loaders never wrote a scheme-qualified identifier but did record the
// logical identifier in one of these properties.
var attributeKeys = []string{"opportunity_id", "acquisition_id", "target_id"}

// Matcher resolves logical identifiers to entities against a cache index.
//
// Resolution is two-phase.  Phase one performs a direct map lookup for every
// derived pattern, near O(k) in the number of logical identifiers and never
// O(n) in the entity population; this is the primary performance property
// the design exists to guarantee.  Phase two, entered only when phase one
// resolved fewer entities than identifiers requested, scans the cached
// entities once and applies the looser prefix / contains / attribute rules
// for legacy and attribute-only identifiers.
type Matcher struct {
	log     logging.Logger
	metrics *prom.EngineMetrics
}

// NewMatcher creates a Matcher.
func NewMatcher(log logging.Logger, metrics *prom.EngineMetrics) *Matcher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prom.NewNopEngineMetrics()
	}
	return &Matcher{
		log:     log.Named("matcher"),
		metrics: metrics,
	}
}

// Resolve returns the entities currently representing logicalIDs.  The
// result never contains two entities with the same identifier, its order is
// unspecified, and identifiers that match nothing are silently dropped.
func (m *Matcher) Resolve(index map[string]scene.Entity, logicalIDs []string) []scene.Entity {
	if len(logicalIDs) == 0 || len(index) == 0 {
		return nil
	}
	m.metrics.ResolveRequestsTotal.Inc()

	patterns := BuildPatternSet(logicalIDs)
	seen := make(map[string]struct{}, len(logicalIDs))
	var found []scene.Entity

	// Phase 1: direct index hits.
	for pattern := range patterns {
		if e, ok := index[pattern]; ok {
			if _, dup := seen[e.ID()]; !dup {
				seen[e.ID()] = struct{}{}
				found = append(found, e)
			}
		}
	}

	// Phase 2: bounded-once fallback scan, paid only when direct lookups
	// left identifiers unaccounted for.
	if len(found) < len(logicalIDs) {
		m.metrics.FallbackScansTotal.Inc()
		rawIDs := make(map[string]struct{}, len(logicalIDs))
		for _, id := range logicalIDs {
			rawIDs[id] = struct{}{}
		}
		for _, e := range index {
			if _, dup := seen[e.ID()]; dup {
				continue
			}
			if entityMatchesPatterns(e, patterns, rawIDs) {
				seen[e.ID()] = struct{}{}
				found = append(found, e)
			}
		}
	}

	if misses := len(logicalIDs) - len(found); misses > 0 {
		// Not an error: unmatched identifiers degrade to an empty highlight.
		m.metrics.ResolutionMissesTotal.Add(float64(misses))
		m.log.Debug("unresolved logical identifiers",
			logging.Int("requested", len(logicalIDs)),
			logging.Int("resolved", len(found)))
	}
	return found
}

// entityMatchesPatterns applies the fallback matching rules: exact identifier
// equality, identifier prefix, contains for scheme-qualified patterns, and
// the domain-attribute comparison against the raw logical identifiers.
func entityMatchesPatterns(e scene.Entity, patterns PatternSet, rawIDs map[string]struct{}) bool {
	id := e.ID()
	for pattern := range patterns {
		if id == pattern || strings.HasPrefix(id, pattern) {
			return true
		}
		if hasDomainSeparator(pattern) && strings.Contains(id, pattern) {
			return true
		}
	}

	props := e.Properties()
	if props == nil {
		return false
	}
	for _, key := range attributeKeys {
		// Absent or non-string attributes report !ok and are non-matches.
		if val, ok := props.String(key); ok {
			if _, hit := rawIDs[val]; hit {
				return true
			}
		}
	}
	return false
}
