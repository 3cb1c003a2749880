// Package metrics holds the Prometheus collectors for upstream calls and gateway requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport"
	OutcomeBackend   = "backend"
	OutcomeParse     = "parse"
)

// Metrics contains all Prometheus metrics for the application
type Metrics struct {
	// Upstream call metrics
	UpstreamCalls        *prometheus.CounterVec
	UpstreamCallDuration *prometheus.HistogramVec

	// Gateway metrics
	RPCRequests *prometheus.CounterVec
	InFlight    prometheus.Gauge
}

// NewMetrics initializes and registers Prometheus metrics
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers Prometheus metrics with a custom registry
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tonx_upstream_calls_total",
				Help: "The total number of calls made to the TONX backend",
			},
			[]string{"adapter", "method", "verb", "outcome"},
		),
		UpstreamCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tonx_upstream_call_duration_seconds",
				Help:    "Latency of calls made to the TONX backend",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"adapter", "method"},
		),
		RPCRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tonxgate_rpc_requests_total",
				Help: "The total number of gateway JSON-RPC requests by method",
			},
			[]string{"method", "status"},
		),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tonxgate_requests_in_flight",
			Help: "The number of gateway JSON-RPC requests being served",
		}),
	}
}

// ObserveCall records one upstream call. Safe on a nil receiver.
func (m *Metrics) ObserveCall(adapter, method, verb, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamCalls.WithLabelValues(adapter, method, verb, outcome).Inc()
	m.UpstreamCallDuration.WithLabelValues(adapter, method).Observe(elapsed.Seconds())
}

// ObserveRequest records one gateway request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, status string) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(method, status).Inc()
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.InFlight.Inc()
	return m.InFlight.Dec
}
