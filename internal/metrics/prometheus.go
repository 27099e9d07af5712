package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fraudscope"

// PrometheusCollector exports Collector metrics through a Prometheus registry.
type PrometheusCollector struct {
	scored        *prometheus.CounterVec
	scores        prometheus.Histogram
	alerts        prometheus.Counter
	storageErrors *prometheus.CounterVec
	durations     *prometheus.HistogramVec
}

// NewPrometheusCollector registers the collectors on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		scored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_scored_total",
			Help:      "Transactions scored, by risk level.",
		}, []string{"level"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Alerts persisted for high risk transactions.",
		}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Failed store operations.",
		}, []string{"op", "collection"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(c.scored, c.scores, c.alerts, c.storageErrors, c.durations)
	return c
}

func (c *PrometheusCollector) RecordScore(level string, score float64) {
	c.scored.WithLabelValues(level).Inc()
	c.scores.Observe(score)
}

func (c *PrometheusCollector) RecordAlert() {
	c.alerts.Inc()
}

func (c *PrometheusCollector) RecordStorageError(op, collection string) {
	c.storageErrors.WithLabelValues(op, collection).Inc()
}

func (c *PrometheusCollector) RecordOperationDuration(op string, duration time.Duration) {
	c.durations.WithLabelValues(op).Observe(duration.Seconds())
}
