// Package metrics records scoring and storage outcomes.
package metrics

import "time"

// Collector defines the metrics recorded by the transaction service.
type Collector interface {
	RecordScore(level string, score float64)
	RecordAlert()
	RecordStorageError(op, collection string)
	RecordOperationDuration(op string, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of Collector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordScore(string, float64)                   {}
func (n *NoopMetricsCollector) RecordAlert()                                  {}
func (n *NoopMetricsCollector) RecordStorageError(string, string)             {}
func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
