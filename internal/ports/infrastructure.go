package ports

import "time"

// MetricsCollector defines the interface for collecting operational
// metrics from scoring runs. Implementations could use Prometheus,
// StatsD, or simple logging.
// The interface is designed to be low-overhead and non-blocking:
// metric recording must never slow a scoring run or fail it.
type MetricsCollector interface {
	// RecordLatency records the duration of an operation.
	// Labels provide dimensions such as operation outcome.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric by the given value.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets a gauge metric to the given value.
	RecordGauge(metric string, value float64, labels map[string]string)
}

// NoopMetrics is a MetricsCollector that discards everything.
// It keeps metric plumbing optional in tests and tools.
type NoopMetrics struct{}

// RecordLatency implements MetricsCollector.
func (NoopMetrics) RecordLatency(string, time.Duration, map[string]string) {}

// RecordCounter implements MetricsCollector.
func (NoopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge implements MetricsCollector.
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
