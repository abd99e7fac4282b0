// Package middleware provides cross-cutting concerns for the scoring
// service.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sentriq/maturion/internal/application"
	"github.com/sentriq/maturion/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of scoring runs:
// latency, outcome counts, write-back failures, and per-evaluation
// progress.
type PrometheusMetrics struct {
	scoringLatency  *prometheus.HistogramVec
	scoringRuns     *prometheus.CounterVec
	persistFailures prometheus.Counter
	progressGauge   *prometheus.GaugeVec
	systemGauges    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics with the given registerer. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		scoringLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoring_run_duration_seconds",
				Help:    "Execution time of scoring runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
		scoringRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoring_runs_total",
				Help: "Total number of scoring runs by resulting evaluation status.",
			},
			[]string{"status"},
		),
		persistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "scoring_persist_failures_total",
				Help: "Total number of failed computed-field write-backs.",
			},
		),
		progressGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "evaluation_progress_percent",
				Help: "Latest computed progress percentage per evaluation.",
			},
			[]string{"evaluation_id"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scoring_system_state",
				Help: "Current system state values for the scoring service.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	status, ok := labels["status"]
	if !ok {
		status = "unknown"
	}
	pm.scoringLatency.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case application.MetricScoringRuns:
		status, ok := labels["status"]
		if !ok {
			status = "unknown"
		}
		pm.scoringRuns.WithLabelValues(status).Add(value)
	case application.MetricPersistFailures:
		pm.persistFailures.Add(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case application.MetricEvaluationProgress:
		id, ok := labels["evaluation_id"]
		if !ok {
			id = "unknown"
		}
		pm.progressGauge.WithLabelValues(id).Set(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Set(value)
	}
}

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
