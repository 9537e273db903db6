package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// impact analysis batch.
type Metrics struct {
	RecordsProcessed prometheus.Counter
	Anomalies        *prometheus.CounterVec // label: kind
	SinkErrors       *prometheus.CounterVec // label: sink

	BatchDuration prometheus.Histogram
	ReportReady   prometheus.Gauge
}

// NewMetrics creates and registers all batch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "records_processed_total",
			Help:      "Total storm event records consumed from the dataset.",
		}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "anomalies_total",
			Help:      "Data-quality anomalies by kind.",
		}, []string{"kind"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "sink_errors_total",
			Help:      "Report sink publish failures by sink name.",
		}, []string{"sink"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_impact",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete parse-aggregate-rank pass.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
		ReportReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "report_ready",
			Help:      "1 once a finalized report is available, 0 before.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsProcessed,
		m.Anomalies,
		m.SinkErrors,
		m.BatchDuration,
		m.ReportReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsProcessed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "records_processed_total"}),
		Anomalies:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_impact", Name: "anomalies_total"}, []string{"kind"}),
		SinkErrors:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_impact", Name: "sink_errors_total"}, []string{"sink"}),
		BatchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_impact", Name: "batch_duration_seconds"}),
		ReportReady:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "report_ready"}),
	}
}
