package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the viewer.
type Metrics struct {
	DatasetFeatures prometheus.Gauge

	// Aggregation metrics.
	Aggregations        prometheus.Counter
	AggregationDuration prometheus.Histogram

	// Rendering metrics.
	Renders        *prometheus.CounterVec   // labels: view={map,chart,image,page}, outcome={success,error}
	RenderDuration *prometheus.HistogramVec // labels: view
	RenderCache    *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates and registers all viewer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetFeatures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crash_map",
			Name:      "dataset_features",
			Help:      "Number of counties in the loaded dataset index.",
		}),
		Aggregations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crash_map",
			Name:      "aggregations_total",
			Help:      "Total crash-count aggregations computed.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crash_map",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of a single aggregation over the index.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crash_map",
			Name:      "renders_total",
			Help:      "Rendered views by view and outcome.",
		}, []string{"view", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crash_map",
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering a view, cache misses only.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"view"}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crash_map",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.DatasetFeatures,
		m.Aggregations,
		m.AggregationDuration,
		m.Renders,
		m.RenderDuration,
		m.RenderCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetFeatures:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crash_map", Name: "dataset_features"}),
		Aggregations:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crash_map", Name: "aggregations_total"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crash_map", Name: "aggregation_duration_seconds"}),
		Renders:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crash_map", Name: "renders_total"}, []string{"view", "outcome"}),
		RenderDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "crash_map", Name: "render_duration_seconds"}, []string{"view"}),
		RenderCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crash_map", Name: "render_cache_total"}, []string{"result"}),
	}
}
