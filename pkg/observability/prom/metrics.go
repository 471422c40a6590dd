// Package prom provides Prometheus-backed implementations of the
// observability hooks.
//
// Importing this package registers the metrics with the default Prometheus
// registry; calling [Enable] installs the hook implementations so that
// client activity is recorded:
//
//	prom.Enable()
//	http.Handle("/metrics", promhttp.Handler())
package prom

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/graphbound/sparqlkit/pkg/observability"
)

// QueryBuckets defines histogram buckets suited for endpoint round-trip
// latencies, ranging from 5ms to 30s.
var QueryBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var (
	// RequestsTotal counts protocol exchanges by operation, method, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparqlkit_requests_total",
			Help: "Total protocol requests",
		},
		[]string{"operation", "method", "status"},
	)

	// RequestDuration records exchange duration in seconds by operation and method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sparqlkit_request_duration_seconds",
			Help:    "Request duration",
			Buckets: QueryBuckets,
		},
		[]string{"operation", "method"},
	)

	// RetriesTotal counts retries after transient transport failures.
	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparqlkit_retries_total",
			Help: "Transient failure retries",
		},
		[]string{"operation"},
	)

	// TransportErrorsTotal counts exchanges that never produced a response.
	TransportErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparqlkit_transport_errors_total",
			Help: "Transport failures",
		},
		[]string{"operation"},
	)

	// DecodesTotal counts decoded response bodies by content type and result kind.
	DecodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparqlkit_decodes_total",
			Help: "Decoded responses",
		},
		[]string{"content_type", "kind"},
	)

	// DecodeErrorsTotal counts response bodies that could not be decoded.
	DecodeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparqlkit_decode_errors_total",
			Help: "Decode failures",
		},
		[]string{"content_type"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RetriesTotal,
		TransportErrorsTotal,
		DecodesTotal,
		DecodeErrorsTotal,
	)
}

// Hooks implements observability.HTTPHooks and observability.DecodeHooks
// by recording events as Prometheus metrics.
type Hooks struct{}

// Enable installs Prometheus-backed hooks into the observability registry.
func Enable() {
	observability.SetHTTPHooks(Hooks{})
	observability.SetDecodeHooks(Hooks{})
}

func (Hooks) OnRequest(context.Context, string, string, string) {}

func (Hooks) OnResponse(_ context.Context, method, _, operation string, statusCode int, duration time.Duration) {
	RequestsTotal.WithLabelValues(operation, method, statusClass(statusCode)).Inc()
	RequestDuration.WithLabelValues(operation, method).Observe(duration.Seconds())
}

func (Hooks) OnRetry(_ context.Context, _, _, operation string, _ int, _ error) {
	RetriesTotal.WithLabelValues(operation).Inc()
}

func (Hooks) OnError(_ context.Context, _, _, operation string, _ error) {
	TransportErrorsTotal.WithLabelValues(operation).Inc()
}

func (Hooks) OnDecode(_ context.Context, contentType, kind string, _ time.Duration) {
	DecodesTotal.WithLabelValues(contentType, kind).Inc()
}

func (Hooks) OnDecodeError(_ context.Context, contentType string, _ error) {
	DecodeErrorsTotal.WithLabelValues(contentType).Inc()
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
