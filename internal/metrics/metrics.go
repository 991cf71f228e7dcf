// Package metrics defines the minimal metrics sink the CLI reports into.
//
// The analysis core never emits metrics; only the command layer observes a
// run (row counts, duration, outcome) and forwards it to whichever Backend
// is configured. Backends live in subpackages so their SDKs stay out of the
// core's dependency graph.
package metrics

// Labels attach low-cardinality dimensions to a metric point.
type Labels map[string]string

// Backend is the metrics sink interface.
type Backend interface {
	// IncCounter adds delta to a named counter. Non-positive deltas are
	// ignored by implementations.
	IncCounter(name string, delta float64, labels Labels)

	// SetGauge records the latest value of a named gauge.
	SetGauge(name string, value float64, labels Labels)

	// Close flushes anything buffered and releases resources.
	Close() error
}

// Metric names understood by backends. Unknown names are ignored by design,
// so adding a metric at the call site never breaks an older backend.
const (
	RunsTotal      = "scan_runs_total"      // labels: status
	RowsTotal      = "scan_rows_total"      // labels: format
	DurationGauge  = "scan_duration_seconds"
	NumericColumns = "scan_numeric_columns"
)

// Nop discards all metrics. Used when no backend is configured.
type Nop struct{}

func (Nop) IncCounter(string, float64, Labels) {}
func (Nop) SetGauge(string, float64, Labels)   {}
func (Nop) Close() error                       { return nil }
