// Package metrics provides Prometheus metrics for the record store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels recorded by the service layer.
const (
	OpAdd             = "add"
	OpGet             = "get"
	OpList            = "list"
	OpUpdate          = "update"
	OpPublish         = "publish"
	OpDelete          = "delete"
	OpDeleteAll       = "delete_all"
	OpSearch          = "search"
	OpExists          = "exists"
	OpCount           = "count"
	OpCountByCategory = "count_by_category"
)

// Status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StoreMetrics holds counters and histograms for record store operations.
// A nil *StoreMetrics is valid and records nothing.
type StoreMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordsGauge      *prometheus.GaugeVec

	collectors []prometheus.Collector
}

// NewStoreMetrics creates the store metrics and registers them on registry.
func NewStoreMetrics(registry prometheus.Registerer) (*StoreMetrics, error) {
	m := &StoreMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StoreMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kadgis_store_operations_total",
			Help: "Total number of record store operations",
		},
		[]string{"operation", "table", "status"},
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kadgis_store_operation_duration_seconds",
			Help:    "Time taken for record store operations",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"operation", "table"},
	)

	m.recordsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kadgis_store_records",
			Help: "Number of records per table at the last count",
		},
		[]string{"table"},
	)

	m.collectors = []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.recordsGauge,
	}
}

// Describe implements the Collector interface
func (m *StoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *StoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// Observe records one operation that started at start. A non-nil err marks it
// as failed.
func (m *StoreMetrics) Observe(operation, table string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.operationsTotal.WithLabelValues(operation, table, status).Inc()
	m.operationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// SetRecordCount publishes the latest known row count for table.
func (m *StoreMetrics) SetRecordCount(table string, n int64) {
	if m == nil {
		return
	}
	m.recordsGauge.WithLabelValues(table).Set(float64(n))
}
