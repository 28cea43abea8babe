// Package monitoring provides Prometheus metrics for the HTTP layer and
// the AI collaborator.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AIRequestsTotal     *prometheus.CounterVec
	AIFallbacksTotal    *prometheus.CounterVec
}

// NewMetrics registers the collectors on a registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "foyer",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "foyer",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "foyer",
				Name:      "ai_requests_total",
				Help:      "Total AI collaborator calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		AIFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "foyer",
				Name:      "ai_fallbacks_total",
				Help:      "Total deterministic fallbacks served by operation",
			},
			[]string{"operation"},
		),
	}
}

// RecordAIRequest counts one AI collaborator call
func (m *Metrics) RecordAIRequest(operation, outcome string) {
	m.AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordAIFallback counts one deterministic fallback served in place of
// an AI result
func (m *Metrics) RecordAIFallback(operation string) {
	m.AIFallbacksTotal.WithLabelValues(operation).Inc()
}
