package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SheetsProcessed counts sheets that completed the scan-and-lock pipeline.
	SheetsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_sheets_processed_total",
		Help: "Total number of sheets processed to completion",
	})
	// SheetsSkipped counts sheets skipped because of fetch or metadata errors.
	SheetsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_sheets_skipped_total",
		Help: "Total number of sheets skipped due to errors",
	})
	// RowsScanned counts all rows examined for lock eligibility.
	RowsScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_rows_scanned_total",
		Help: "Total number of rows scanned",
	})
	// RowsLocked counts rows confirmed locked.
	RowsLocked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_rows_locked_total",
		Help: "Total number of rows locked",
	})
	// BatchRetries counts lock mutation retries.
	BatchRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_batch_retries_total",
		Help: "Total number of lock batch retries",
	})
	// BatchesAbandoned counts batches abandoned after exhausting retries.
	BatchesAbandoned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weeklock_batches_abandoned_total",
		Help: "Total number of lock batches abandoned",
	})
)

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Register registers the weeklock metrics on the provided registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(SheetsProcessed, SheetsSkipped, RowsScanned, RowsLocked, BatchRetries, BatchesAbandoned)
}
