package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analytics backend.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, path, status
	HTTPDuration *prometheus.HistogramVec // labels: path

	// Filter engine metrics.
	FilterEvaluations prometheus.Counter
	FilterCacheHits   prometheus.Counter
	FilterCacheMisses prometheus.Counter
	FilteredRows      prometheus.Histogram

	DatasetRows prometheus.Gauge
}

// NewMetrics creates and registers all backend metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.FilterEvaluations,
		m.FilterCacheHits,
		m.FilterCacheMisses,
		m.FilteredRows,
		m.DatasetRows,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accidents_api",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accidents_api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"path"}),
		FilterEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents_api",
			Name:      "filter_evaluations_total",
			Help:      "Filter passes computed over the base table.",
		}),
		FilterCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents_api",
			Name:      "filter_cache_hits_total",
			Help:      "Filtered views served from the memoization cache.",
		}),
		FilterCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents_api",
			Name:      "filter_cache_misses_total",
			Help:      "Filter requests not found in the memoization cache.",
		}),
		FilteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "accidents_api",
			Name:      "filtered_rows",
			Help:      "Number of rows remaining after filter application.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accidents_api",
			Name:      "dataset_rows",
			Help:      "Rows in the loaded base table.",
		}),
	}
}
