package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API server.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	internalErrors prometheus.Counter
	logins         prometheus.Counter
}

// NewMetrics registers the collectors on the given registry. Production
// code passes prometheus.DefaultRegisterer; tests pass a fresh registry so
// servers can be constructed repeatedly.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foodgram",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "foodgram",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		internalErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "internal_errors_total",
			Help:      "Unexpected errors surfaced as HTTP 500.",
		}),
		logins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "logins_total",
			Help:      "Successful token logins.",
		}),
	}
}

// RecordInternalError counts an unexpected 500.
func (m *Metrics) RecordInternalError() {
	m.internalErrors.Add(1)
}

// RecordLogin counts a successful login.
func (m *Metrics) RecordLogin() {
	m.logins.Add(1)
}
