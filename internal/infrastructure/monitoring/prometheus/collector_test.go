package prometheus

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsCollectorRequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{})
	assert.Error(t, err)
}

func TestRegisterIsIdempotent(t *testing.T) {
	mc, err := NewMetricsCollector(CollectorConfig{Namespace: "missionviz"})
	require.NoError(t, err)

	first := mc.RegisterCounter("requests_total", "Requests.", "mode")
	first.WithLabelValues("selection").Inc()

	// A second registration under the same name must reuse the original
	// collector rather than panic on a duplicate.
	second := mc.RegisterCounter("requests_total", "Requests.", "mode")
	second.WithLabelValues("selection").Inc()

	body := scrape(t, mc)
	assert.Contains(t, body, `missionviz_requests_total{mode="selection"} 2`)
}

func TestCounterGaugeHistogramRoundTrip(t *testing.T) {
	mc, err := NewMetricsCollector(CollectorConfig{Namespace: "missionviz", Subsystem: "engine"})
	require.NoError(t, err)

	mc.RegisterCounter("ops_total", "Operations.").WithLabelValues().Add(3)
	g := mc.RegisterGauge("active", "Active items.").WithLabelValues()
	g.Set(5)
	g.Inc()
	g.Dec()
	mc.RegisterHistogram("latency_seconds", "Latency.", []float64{0.01, 0.1}).WithLabelValues().Observe(0.05)

	body := scrape(t, mc)
	assert.Contains(t, body, "missionviz_engine_ops_total 3")
	assert.Contains(t, body, "missionviz_engine_active 5")
	assert.Contains(t, body, `missionviz_engine_latency_seconds_bucket{le="0.1"} 1`)
}

func TestCollectorsDoNotCollide(t *testing.T) {
	a, err := NewMetricsCollector(CollectorConfig{Namespace: "missionviz"})
	require.NoError(t, err)
	b, err := NewMetricsCollector(CollectorConfig{Namespace: "missionviz"})
	require.NoError(t, err)

	a.RegisterCounter("shared_total", "Shared.").WithLabelValues().Inc()
	b.RegisterCounter("shared_total", "Shared.").WithLabelValues().Add(7)

	assert.Contains(t, scrape(t, a), "missionviz_shared_total 1")
	assert.Contains(t, scrape(t, b), "missionviz_shared_total 7")
}

func TestEngineMetricsRegisterOnRealCollector(t *testing.T) {
	mc, err := NewMetricsCollector(CollectorConfig{Namespace: "missionviz"})
	require.NoError(t, err)

	m := NewEngineMetrics(mc)
	m.CacheRebuildsTotal.Inc()
	m.HighlightRequestsTotal.WithLabelValues("repair").Inc()
	m.ApplyDurationSeconds.Observe(0.002)
	m.GhostClonesActive.Set(2)

	body := scrape(t, mc)
	assert.Contains(t, body, "missionviz_entity_cache_rebuilds_total 1")
	assert.Contains(t, body, `missionviz_highlight_requests_total{mode="repair"} 1`)
	assert.Contains(t, body, "missionviz_ghost_clones_active 2")
}

func TestNopCollectorDiscards(t *testing.T) {
	mc := NewNopCollector()
	assert.NotPanics(t, func() {
		mc.RegisterCounter("x", "x").WithLabelValues("a").Inc()
		mc.RegisterGauge("y", "y").WithLabelValues().Set(1)
		mc.RegisterHistogram("z", "z", nil).WithLabelValues().Observe(1)
		NewNopEngineMetrics().ClearsTotal.Inc()
	})
}

func scrape(t *testing.T, mc MetricsCollector) string {
	t.Helper()
	w := httptest.NewRecorder()
	mc.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, w.Code)
	return w.Body.String()
}
