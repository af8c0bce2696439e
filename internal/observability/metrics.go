package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aurora_etl"

// Run outcomes recorded on RunsTotal.
const (
	OutcomeSuccess          = "success"
	OutcomeAcquisitionError = "acquisition_error"
	OutcomeRenderError      = "render_error"
	OutcomeError            = "error"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one pipeline run.
type Metrics struct {
	RunsTotal *prometheus.CounterVec // labels: outcome={success,acquisition_error,render_error,error}

	FetchDuration  prometheus.Histogram
	RenderDuration prometheus.Histogram
	ImagesWritten  prometheus.Counter

	// Retention metrics.
	FilesSwept  prometheus.Counter
	SweepErrors prometheus.Counter

	NotifyErrors prometheus.Counter

	LastSuccess     prometheus.Gauge
	ForecastValidAt prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the forecast download.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of rasterizing and encoding one image.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}),
		ImagesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_written_total",
			Help:      "Total forecast images written to disk.",
		}),
		FilesSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_swept_total",
			Help:      "Total expired files deleted by the retention sweep.",
		}),
		SweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_errors_total",
			Help:      "Total files or directories the retention sweep could not handle.",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_errors_total",
			Help:      "Total image notifications that failed to publish.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote an image.",
		}),
		ForecastValidAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_valid_at_timestamp_seconds",
			Help:      "Unix time of the forecast rendered by the last successful run.",
		}),
	}
}

// NewMetrics creates all pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RunsTotal,
		m.FetchDuration,
		m.RenderDuration,
		m.ImagesWritten,
		m.FilesSwept,
		m.SweepErrors,
		m.NotifyErrors,
		m.LastSuccess,
		m.ForecastValidAt,
	}
}
