package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics records counters for the inventory write path.
type InventoryMetrics struct {
	writes   *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	ledger   prometheus.Counter
}

// NewInventoryMetrics registers the write-path metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_writes_total",
		Help: "Completed inventory write operations.",
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_write_failures_total",
		Help: "Failed inventory write operations.",
	}, []string{"operation"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_write_duration_seconds",
		Help:    "Duration of inventory write transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	ledger := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_ledger_entries_total",
		Help: "Stock ledger rows appended.",
	})
	reg.MustRegister(writes, failures, duration, ledger)
	return &InventoryMetrics{
		writes:   writes,
		failures: failures,
		duration: duration,
		ledger:   ledger,
	}
}

// IncWrite increments the completed-write counter for the named operation.
func (m *InventoryMetrics) IncWrite(operation string) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *InventoryMetrics) IncFailure(operation string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveDuration records the transaction duration for the named operation.
func (m *InventoryMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncLedgerEntry counts one appended stock ledger row.
func (m *InventoryMetrics) IncLedgerEntry() {
	if m == nil || m.ledger == nil {
		return
	}
	m.ledger.Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
