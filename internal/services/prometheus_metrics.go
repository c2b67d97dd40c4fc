package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	authEventsTotal            *prometheus.CounterVec
	transactionOperationsTotal *prometheus.CounterVec
	cacheAccessTotal           *prometheus.CounterVec
	upstreamCallsTotal         *prometheus.CounterVec
	upstreamCallDuration       prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events by type and outcome",
			},
			[]string{"event", "outcome"},
		),
		transactionOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_operations_total",
				Help: "Total number of transaction operations by type and outcome",
			},
			[]string{"operation", "outcome"},
		),
		cacheAccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_access_total",
				Help: "Total number of cache lookups by cache name and outcome",
			},
			[]string{"cache", "outcome"},
		),
		upstreamCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_calls_total",
				Help: "Total number of upstream provider calls by upstream and outcome",
			},
			[]string{"upstream", "outcome"},
		),
		upstreamCallDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upstream_call_duration_milliseconds",
				Help:    "Upstream provider call duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

func (m *PrometheusMetrics) RecordAuthEvent(event, outcome string) {
	m.authEventsTotal.WithLabelValues(event, outcome).Inc()
}

func (m *PrometheusMetrics) RecordTransactionOperation(operation, outcome string) {
	m.transactionOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *PrometheusMetrics) RecordCacheAccess(cacheName, outcome string) {
	m.cacheAccessTotal.WithLabelValues(cacheName, outcome).Inc()
}

func (m *PrometheusMetrics) RecordUpstreamCall(upstream, outcome string, duration time.Duration) {
	m.upstreamCallsTotal.WithLabelValues(upstream, outcome).Inc()
	if duration > 0 {
		m.upstreamCallDuration.Observe(float64(duration.Milliseconds()))
	}
}

// NoopMetrics discards all recordings, for use in tests
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface {
	return &NoopMetrics{}
}

func (m *NoopMetrics) RecordAuthEvent(event, outcome string) {}

func (m *NoopMetrics) RecordTransactionOperation(operation, outcome string) {}

func (m *NoopMetrics) RecordCacheAccess(cacheName, outcome string) {}

func (m *NoopMetrics) RecordUpstreamCall(upstream, outcome string, duration time.Duration) {}
