// Package prometheus wraps the Prometheus client behind small vector
// interfaces so that engine components depend on a narrow metrics contract
// rather than on the client library directly, and so that tests can run with
// the no-op implementation.
package prometheus

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is the factory for the metric vectors used by the
// application.  Each collector owns a private registry; two collectors never
// collide on metric names.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) CounterVec
	RegisterGauge(name, help string, labels ...string) GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec

	// Handler returns the HTTP handler serving the collector's registry in
	// the Prometheus exposition format.
	Handler() http.Handler
}

// CounterVec wraps prometheus.CounterVec.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Counter wraps prometheus.Counter.
type Counter interface {
	Inc()
	Add(delta float64)
}

// GaugeVec wraps prometheus.GaugeVec.
type GaugeVec interface {
	WithLabelValues(lvs ...string) Gauge
}

// Gauge wraps prometheus.Gauge.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// HistogramVec wraps prometheus.HistogramVec.
type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

// Histogram wraps prometheus.Histogram.
type Histogram interface {
	Observe(value float64)
}

// CollectorConfig holds construction parameters for a MetricsCollector.
type CollectorConfig struct {
	// Namespace prefixes every metric name (required).
	Namespace string `mapstructure:"namespace"`

	// Subsystem is an optional second-level prefix.
	Subsystem string `mapstructure:"subsystem"`

	// DefaultHistogramBuckets is used when RegisterHistogram receives a nil
	// bucket slice.  Defaults to prometheus.DefBuckets.
	DefaultHistogramBuckets []float64 `mapstructure:"-"`
}

type prometheusCollector struct {
	registry *prometheus.Registry
	cfg      CollectorConfig

	mu         sync.Mutex
	registered map[string]prometheus.Collector
}

// NewMetricsCollector creates a MetricsCollector with a fresh private
// registry.  Namespace is required so that every exported series carries the
// application prefix.
func NewMetricsCollector(cfg CollectorConfig) (MetricsCollector, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("prometheus: namespace is required")
	}
	if len(cfg.DefaultHistogramBuckets) == 0 {
		cfg.DefaultHistogramBuckets = prometheus.DefBuckets
	}
	return &prometheusCollector{
		registry:   prometheus.NewRegistry(),
		cfg:        cfg,
		registered: make(map[string]prometheus.Collector),
	}, nil
}

// register stores c under name, panicking on a duplicate registration with a
// different collector.  Re-registering the same name returns the original so
// that idempotent wiring code stays simple.
func (p *prometheusCollector) register(name string, build func() prometheus.Collector) prometheus.Collector {
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.registered[name]; ok {
		return existing
	}
	c := build()
	p.registry.MustRegister(c)
	p.registered[name] = c
	return c
}

func (p *prometheusCollector) RegisterCounter(name, help string, labels ...string) CounterVec {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.cfg.Namespace,
			Subsystem: p.cfg.Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	})
	return &counterVec{v: c.(*prometheus.CounterVec)}
}

func (p *prometheusCollector) RegisterGauge(name, help string, labels ...string) GaugeVec {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.cfg.Namespace,
			Subsystem: p.cfg.Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	})
	return &gaugeVec{v: c.(*prometheus.GaugeVec)}
}

func (p *prometheusCollector) RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec {
	if len(buckets) == 0 {
		buckets = p.cfg.DefaultHistogramBuckets
	}
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.cfg.Namespace,
			Subsystem: p.cfg.Subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, labels)
	})
	return &histogramVec{v: c.(*prometheus.HistogramVec)}
}

func (p *prometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

type counterVec struct{ v *prometheus.CounterVec }

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return c.v.WithLabelValues(lvs...)
}

type gaugeVec struct{ v *prometheus.GaugeVec }

func (g *gaugeVec) WithLabelValues(lvs ...string) Gauge {
	return g.v.WithLabelValues(lvs...)
}

type histogramVec struct{ v *prometheus.HistogramVec }

func (h *histogramVec) WithLabelValues(lvs ...string) Histogram {
	return h.v.WithLabelValues(lvs...)
}

// ── No-op implementation ─────────────────────────────────────────────────────

type nopCollector struct{}

// NewNopCollector returns a MetricsCollector whose metrics discard every
// observation.  Intended for tests and for deployments with metrics disabled.
func NewNopCollector() MetricsCollector { return nopCollector{} }

func (nopCollector) RegisterCounter(string, string, ...string) CounterVec { return nopCounterVec{} }
func (nopCollector) RegisterGauge(string, string, ...string) GaugeVec     { return nopGaugeVec{} }
func (nopCollector) RegisterHistogram(string, string, []float64, ...string) HistogramVec {
	return nopHistogramVec{}
}
func (nopCollector) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}

type nopCounterVec struct{}
type nopGaugeVec struct{}
type nopHistogramVec struct{}
type nopMetric struct{}

func (nopCounterVec) WithLabelValues(...string) Counter     { return nopMetric{} }
func (nopGaugeVec) WithLabelValues(...string) Gauge         { return nopMetric{} }
func (nopHistogramVec) WithLabelValues(...string) Histogram { return nopMetric{} }

func (nopMetric) Inc()            {}
func (nopMetric) Add(float64)     {}
func (nopMetric) Set(float64)     {}
func (nopMetric) Dec()            {}
func (nopMetric) Observe(float64) {}
