// Package metrics provides the operation-level metrics recorder used by every
// module service, with a Prometheus implementation and a no-op for tests.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records coarse per-operation service metrics.
type Recorder interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// PrometheusRecorder implements Recorder on a Prometheus registry.
type PrometheusRecorder struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the operation metric vectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	labels := []string{"operation", "service"}
	r := &PrometheusRecorder{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Number of attempted service operations.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_successes_total",
			Help:      "Number of successful service operations.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Number of failed service operations.",
		}, labels),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
	reg.MustRegister(r.attempts, r.successes, r.failures, r.durations)
	return r
}

func (r *PrometheusRecorder) RecordOperationAttempt(_ context.Context, operation, service string) {
	r.attempts.WithLabelValues(operation, service).Inc()
}

func (r *PrometheusRecorder) RecordOperationSuccess(_ context.Context, operation, service string) {
	r.successes.WithLabelValues(operation, service).Inc()
}

func (r *PrometheusRecorder) RecordOperationFailure(_ context.Context, operation, service string) {
	r.failures.WithLabelValues(operation, service).Inc()
}

func (r *PrometheusRecorder) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	r.durations.WithLabelValues(operation, service).Observe(d.Seconds())
}

// NoOp is a Recorder that discards everything. Used in tests.
type NoOp struct{}

func (NoOp) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOp) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOp) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}

var _ Recorder = (*PrometheusRecorder)(nil)

var _ Recorder = NoOp{}
