package highlight

import (
	"github.com/panos-dim/missionviz/internal/domain/scene"
	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	prom "github.com/panos-dim/missionviz/internal/infrastructure/monitoring/prometheus"
)

// Cache is the lazily rebuilt index from on-entity identifier to entity
// reference, covering the viewer's primary collection and every secondary
// collection.
//
// Staleness is detected by a deliberate O(1) heuristic: the total entity
// count across all collections is compared against the count captured at the
// last build, and the index is rebuilt only on mismatch.  A content change
// that leaves the count unchanged (one entity removed and another added in
// the same tick) is therefore invisible; hosts that mutate populations this
// way must call Invalidate.
type Cache struct {
	index     map[string]scene.Entity
	lastCount int
	built     bool
	rebuilds  int

	log     logging.Logger
	metrics *prom.EngineMetrics
}

// NewCache creates an empty, unbuilt cache.
func NewCache(log logging.Logger, metrics *prom.EngineMetrics) *Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prom.NewNopEngineMetrics()
	}
	return &Cache{
		log:     log.Named("cache"),
		metrics: metrics,
	}
}

// Get returns the identifier index for the viewer, rebuilding it first when
// the cache is unbuilt or the entity population count has changed.  A nil
// viewer yields an empty index.
//
// The returned map is the cache's internal state; callers must treat it as
// read-only and must not retain it across scene mutations.
func (c *Cache) Get(v scene.Viewer) map[string]scene.Entity {
	if v == nil {
		return map[string]scene.Entity{}
	}

	count := scene.EntityCount(v)
	if c.built && count == c.lastCount {
		return c.index
	}

	c.rebuild(v, count)
	return c.index
}

// rebuild re-indexes every collection, primary first, then each secondary in
// order.  Later insertions win on a duplicate identifier; identifiers are
// expected unique within a scene, so last-wins is an acceptable tiebreak.
// Entities with an empty identifier are not indexable and are skipped.
func (c *Cache) rebuild(v scene.Viewer, count int) {
	index := make(map[string]scene.Entity, count)
	insert := func(e scene.Entity) bool {
		if id := e.ID(); id != "" {
			index[id] = e
		}
		return true
	}
	v.Primary().Each(insert)
	for _, col := range v.Secondary() {
		col.Each(insert)
	}

	c.index = index
	c.lastCount = count
	c.built = true
	c.rebuilds++

	c.metrics.CacheRebuildsTotal.Inc()
	c.metrics.CacheEntities.Set(float64(len(index)))
	c.log.Debug("entity cache rebuilt",
		logging.Int("entities", len(index)),
		logging.Int("population", count))
}

// Invalidate resets the cache to its unbuilt state, forcing a rebuild on the
// next Get.  This is the escape hatch for hosts that change entity content
// without changing the total count.
func (c *Cache) Invalidate() {
	c.index = nil
	c.lastCount = 0
	c.built = false
	c.metrics.CacheInvalidatesTotal.Inc()
}

// Rebuilds reports how many times the index has been rebuilt.  Exposed so
// that tests can assert the staleness heuristic without instrumenting the
// scene host.
func (c *Cache) Rebuilds() int { return c.rebuilds }
