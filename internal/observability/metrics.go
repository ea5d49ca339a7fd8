package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "microplastics_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	RowsRead     prometheus.Counter
	RowsRetained prometheus.Counter
	RowsDropped  prometheus.Counter
	DatesMissing prometheus.Counter

	DocumentsWritten *prometheus.CounterVec // labels: sink={filesystem,kafka}
	RunDuration      prometheus.Histogram
	RunFailures      prometheus.Counter
	Regions          *prometheus.GaugeVec // labels: table={icr,completeness,diversity,igrm}
	PipelineRunning  prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.collectors()...)
	return m
}

// Gatherer returns the registry the metrics are registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m.registry != nil {
		return m.registry
	}
	return prometheus.DefaultGatherer
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total source rows read.",
		}),
		RowsRetained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_retained_total",
			Help:      "Total rows passing the mandatory-field filter.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped for a missing or invalid concentration or coordinate.",
		}),
		DatesMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dates_unparsed_total",
			Help:      "Total retained rows whose date could not be parsed.",
		}),
		DocumentsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_written_total",
			Help:      "Output documents written by sink.",
		}, []string{"sink"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-compute-load run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RunFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Total runs aborted by a fatal error.",
		}),
		Regions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions",
			Help:      "Regions scored in the last run, by metric table.",
		}, []string{"table"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead,
		m.RowsRetained,
		m.RowsDropped,
		m.DatesMissing,
		m.DocumentsWritten,
		m.RunDuration,
		m.RunFailures,
		m.Regions,
		m.PipelineRunning,
	}
}
