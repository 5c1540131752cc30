package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec
}

// NewMetrics creates the gateway metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierdz_requests_total",
				Help: "Total number of requests by operation, provider, and status",
			},
			[]string{"operation", "provider", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courierdz_request_duration_seconds",
				Help:    "Request duration in seconds by operation and provider",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "provider"},
		),
		ProviderErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierdz_provider_errors_total",
				Help: "Total provider errors by provider and error kind",
			},
			[]string{"provider", "kind"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.ProviderErrors)
	return m
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, provider, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, provider, status).Inc()
	m.RequestDuration.WithLabelValues(operation, provider).Observe(duration)
}

// RecordError records a provider error metric.
func (m *Metrics) RecordError(provider, kind string) {
	m.ProviderErrors.WithLabelValues(provider, kind).Inc()
}
