package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionMutations *prometheus.CounterVec
	transactionLists     *prometheus.CounterVec
	aggregations         *prometheus.CounterVec
	authEvents           *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_mutations_total",
				Help: "Total number of transaction create/update/delete operations",
			},
			[]string{"operation", "status"},
		),
		transactionLists: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_lists_total",
				Help: "Total number of transaction list requests by sort key",
			},
			[]string{"sort_by"},
		),
		aggregations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_aggregations_total",
				Help: "Total number of category aggregation queries",
			},
			[]string{"status"},
		),
		authEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "status"},
		),
	}
}

func (m *PrometheusMetrics) RecordTransactionMutation(operation, status string) {
	m.transactionMutations.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordTransactionList(sortBy string) {
	// Collapse free-form sort parameters to the two orderings that exist
	if sortBy != "amount" {
		sortBy = "date"
	}
	m.transactionLists.WithLabelValues(sortBy).Inc()
}

func (m *PrometheusMetrics) RecordAggregation(status string) {
	m.aggregations.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) RecordAuthEvent(event, status string) {
	m.authEvents.WithLabelValues(event, status).Inc()
}

// NoopMetrics discards all recordings. Used in tests, where registering the
// Prometheus collectors twice on the default registry would panic.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) RecordTransactionMutation(operation, status string) {}
func (m *NoopMetrics) RecordTransactionList(sortBy string)               {}
func (m *NoopMetrics) RecordAggregation(status string)                   {}
func (m *NoopMetrics) RecordAuthEvent(event, status string)              {}
