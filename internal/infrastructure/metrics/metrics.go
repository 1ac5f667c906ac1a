package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry         *prometheus.Registry
	ProductLookups   *prometheus.CounterVec
	ScanVerdicts     *prometheus.CounterVec
	PreferenceWrites *prometheus.CounterVec
	RateLimited      prometheus.Counter
}

// New creates and registers all metrics on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ProductLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeeat_product_lookups_total",
			Help: "Product database lookups by outcome",
		}, []string{"outcome"}),
		ScanVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeeat_scan_verdicts_total",
			Help: "Completed scans by safety verdict",
		}, []string{"verdict"}),
		PreferenceWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeeat_preference_writes_total",
			Help: "Avoid-list writes by operation and result",
		}, []string{"op", "result"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeeat_http_rate_limited_total",
			Help: "HTTP requests rejected by the per-client rate limiter",
		}),
	}
}

// Registry exposes the registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLookup counts a product lookup
func (m *Metrics) RecordLookup(outcome string) {
	m.ProductLookups.WithLabelValues(outcome).Inc()
}

// RecordVerdict counts a completed scan
func (m *Metrics) RecordVerdict(safe bool) {
	verdict := "unsafe"
	if safe {
		verdict = "safe"
	}
	m.ScanVerdicts.WithLabelValues(verdict).Inc()
}

// RecordPreferenceWrite counts an avoid-list write
func (m *Metrics) RecordPreferenceWrite(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PreferenceWrites.WithLabelValues(op, result).Inc()
}

// IncrementRateLimited counts a rejected HTTP request
func (m *Metrics) IncrementRateLimited() {
	m.RateLimited.Inc()
}
