// Package metrics provides Prometheus metrics for the duelscore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "duelscore"

var (
	duelsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duels_scored_total",
		Help:      "Number of showdowns scored, labeled by outcome.",
	}, []string{"outcome"})

	handsEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hands_evaluated_total",
		Help:      "Number of hands evaluated, labeled by category.",
	}, []string{"category"})

	malformedLines = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_lines_total",
		Help:      "Number of input lines rejected as malformed.",
	})

	matchesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_saved_total",
		Help:      "Number of match tallies persisted to the store.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests, labeled by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})
)

// RecordDuel records one scored showdown
func RecordDuel(outcome string) {
	duelsScored.WithLabelValues(outcome).Inc()
}

// RecordHand records one evaluated hand
func RecordHand(category string) {
	handsEvaluated.WithLabelValues(category).Inc()
}

// RecordMalformedLine records one rejected input line
func RecordMalformedLine() {
	malformedLines.Inc()
}

// RecordMatchSaved records one persisted match
func RecordMatchSaved() {
	matchesSaved.Inc()
}

// RecordHTTPRequest records one handled HTTP request
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the latency of one HTTP request
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
