package prometheus

// EngineMetrics holds every metric emitted by the highlight engine.  All
// fields are non-nil after NewEngineMetrics; components receive the struct by
// pointer and record without nil checks.
type EngineMetrics struct {
	// Entity cache.
	CacheRebuildsTotal    Counter
	CacheEntities         Gauge
	CacheInvalidatesTotal Counter

	// Entity resolution.
	ResolveRequestsTotal  Counter
	ResolutionMissesTotal Counter
	FallbackScansTotal    Counter

	// Highlight application.
	HighlightRequestsTotal CounterVec // label: mode
	HighlightedEntities    Gauge
	ApplyDurationSeconds   Histogram
	ClearsTotal            Counter

	// Ghost clones.
	GhostClonesCreatedTotal Counter
	GhostClonesActive       Gauge
	GhostCloneFailuresTotal Counter
}

// NewEngineMetrics registers the engine metric family on the given collector.
func NewEngineMetrics(mc MetricsCollector) *EngineMetrics {
	requests := mc.RegisterCounter("highlight_requests_total",
		"Highlight requests processed, by mode.", "mode")
	return &EngineMetrics{
		CacheRebuildsTotal: mc.RegisterCounter("entity_cache_rebuilds_total",
			"Entity cache rebuilds triggered by the count staleness heuristic or explicit invalidation.").WithLabelValues(),
		CacheEntities: mc.RegisterGauge("entity_cache_entities",
			"Entities indexed by the cache at last rebuild.").WithLabelValues(),
		CacheInvalidatesTotal: mc.RegisterCounter("entity_cache_invalidates_total",
			"Explicit entity cache invalidations.").WithLabelValues(),

		ResolveRequestsTotal: mc.RegisterCounter("entity_resolve_requests_total",
			"Logical identifier resolution batches.").WithLabelValues(),
		ResolutionMissesTotal: mc.RegisterCounter("entity_resolution_misses_total",
			"Logical identifiers that matched no entity and were dropped.").WithLabelValues(),
		FallbackScansTotal: mc.RegisterCounter("entity_fallback_scans_total",
			"Full-cache fallback scans entered after incomplete direct resolution.").WithLabelValues(),

		HighlightRequestsTotal: requests,
		HighlightedEntities: mc.RegisterGauge("highlighted_entities",
			"Entities currently carrying a style override.").WithLabelValues(),
		ApplyDurationSeconds: mc.RegisterHistogram("highlight_apply_duration_seconds",
			"Wall time of ApplyHighlights, including the clearing phase.",
			[]float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}).WithLabelValues(),
		ClearsTotal: mc.RegisterCounter("highlight_clears_total",
			"ClearAll invocations (explicit or clear-before-apply).").WithLabelValues(),

		GhostClonesCreatedTotal: mc.RegisterCounter("ghost_clones_created_total",
			"Ghost clone entities synthesized by the engine.").WithLabelValues(),
		GhostClonesActive: mc.RegisterGauge("ghost_clones_active",
			"Engine-owned ghost clone entities currently in the scene.").WithLabelValues(),
		GhostCloneFailuresTotal: mc.RegisterCounter("ghost_clone_failures_total",
			"Ghost clone attempts that found nothing clonable or were rejected by the host.").WithLabelValues(),
	}
}

// NewNopEngineMetrics returns an EngineMetrics whose metrics discard every
// observation.  Use in tests.
func NewNopEngineMetrics() *EngineMetrics {
	return NewEngineMetrics(NewNopCollector())
}
