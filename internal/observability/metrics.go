// Package observability provides the prometheus metrics for the application.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	PollCycles      prometheus.Counter
	PollFailures    prometheus.Counter
	SpotsIngested   prometheus.Counter
	SpotsRejected   prometheus.Counter
	ReplaceDuration prometheus.Histogram
	QSOsLogged      prometheus.Counter
}

// NewMetrics creates the metric collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		PollCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "hunterlog_poll_cycles_total",
			Help: "Number of spot refresh cycles attempted.",
		}),
		PollFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hunterlog_poll_failures_total",
			Help: "Number of refresh cycles that fetched no data.",
		}),
		SpotsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "hunterlog_spots_ingested_total",
			Help: "Number of spots enriched and stored.",
		}),
		SpotsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "hunterlog_spots_rejected_total",
			Help: "Number of malformed spot records skipped.",
		}),
		ReplaceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hunterlog_replace_duration_seconds",
			Help:    "Duration of the enrich-and-replace step.",
			Buckets: prometheus.DefBuckets,
		}),
		QSOsLogged: factory.NewCounter(prometheus.CounterOpts{
			Name: "hunterlog_qsos_logged_total",
			Help: "Number of contacts logged through the API.",
		}),
	}
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
