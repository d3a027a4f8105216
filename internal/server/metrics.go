// Package server — metrics.go registers all Prometheus metrics for the HTTP
// server and exposes helpers used by handlers and middleware.
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values shared across registrations.
const (
	// labelHandler is the "handler" label value used to partition metrics by
	// the logical endpoint name rather than the raw URL path.
	labelHandler = "handler"
)

// serverMetrics holds all Prometheus metrics owned by the HTTP server.
// A single instance is created in New and stored on Server so that tests can
// inject a fresh prometheus.Registry without polluting the default one.
type serverMetrics struct {
	// askRequestsTotal counts completed /api/ask requests, partitioned by
	// routing category and outcome.
	askRequestsTotal *prometheus.CounterVec

	// askDurationSeconds records the wall-clock duration of each /api/ask
	// request from receipt to final answer, partitioned by outcome.
	askDurationSeconds *prometheus.HistogramVec

	// askPassages records how many retrieved passages fed each answered
	// question, partitioned by routing category.
	askPassages *prometheus.HistogramVec

	// httpRequestsTotal counts all HTTP requests handled by the mux,
	// partitioned by method, handler name, and status code.
	httpRequestsTotal *prometheus.CounterVec

	// httpDurationSeconds records the latency of all HTTP requests.
	httpDurationSeconds *prometheus.HistogramVec
}

// newServerMetrics registers all server metrics against reg and returns the
// populated serverMetrics. promauto.With(reg) is used so that each call
// registers into the provided registry rather than the global default —
// this keeps unit tests hermetic.
func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)

	return &serverMetrics{
		askRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sportiq",
			Subsystem: "ask",
			Name:      "requests_total",
			Help:      "Total number of /api/ask requests completed, partitioned by routing category and outcome.",
		}, []string{"category", "outcome"}),

		askDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sportiq",
			Subsystem: "ask",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of /api/ask requests from receipt to final answer.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}, []string{"outcome"}),

		askPassages: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sportiq",
			Subsystem: "ask",
			Name:      "passages",
			Help:      "Number of retrieved passages fed into the prompt per question, partitioned by routing category.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 12},
		}, []string{"category"}),

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sportiq",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the server, partitioned by method, handler, and status code.",
		}, []string{"method", labelHandler, "code"}),

		httpDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sportiq",
			Subsystem: "http",
			Name:      "duration_seconds",
			Help:      "Latency of HTTP requests handled by the server.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", labelHandler}),
	}
}
