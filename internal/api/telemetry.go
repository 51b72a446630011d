package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "salarydash"

// Telemetry owns the service's Prometheus collectors on a private registry.
type Telemetry struct {
	registry *prometheus.Registry

	recomputations *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	filteredRows   prometheus.Histogram
	datasetRows    prometheus.Gauge
}

func NewTelemetry() *Telemetry {
	t := &Telemetry{
		registry: prometheus.NewRegistry(),
		recomputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recomputations_total",
			Help:      "Filtered view recomputations by served view.",
		}, []string{"view"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recomputation_duration_seconds",
			Help:      "Time spent filtering and aggregating per served view.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"view"}),
		filteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filtered_rows",
			Help:      "Rows left after applying a filter selection.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the loaded dataset.",
		}),
	}

	t.registry.MustRegister(
		t.recomputations,
		t.duration,
		t.filteredRows,
		t.datasetRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return t
}

// Handler exposes the registry in the Prometheus text format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{Registry: t.registry})
}

func (t *Telemetry) observe(view string, rows int, took time.Duration) {
	t.recomputations.WithLabelValues(view).Inc()
	t.duration.WithLabelValues(view).Observe(took.Seconds())
	t.filteredRows.Observe(float64(rows))
}

func (t *Telemetry) setDatasetRows(n int) {
	t.datasetRows.Set(float64(n))
}
