// Package table parses delimited text lines into an in-memory table with
// typed cells.
//
// The parser consumes raw lines (it performs no I/O of its own), validates
// that the first line is a plausible header, and assembles immutable rows.
// Row-shape irregularities are normalized rather than reported: short rows are
// padded with empty text cells and long rows are truncated at the header
// width. Input-shape problems (no lines at all, a first line that looks like
// data) surface as typed errors, never as panics.
package table

import (
	"tablescan/internal/value"
)

// Row is an ordered association of column name to classified cell value.
// Column order follows the header. Rows are immutable once constructed.
type Row struct {
	columns []string // shared with the owning Table's header
	values  []value.Value
}

// NewRow builds a row over the given header. values shorter than columns are
// padded with empty text; values longer than columns are truncated. Both
// slices are retained, so callers must not mutate them afterwards.
func NewRow(columns []string, values []value.Value) Row {
	switch {
	case len(values) < len(columns):
		padded := make([]value.Value, len(columns))
		copy(padded, values)
		for i := len(values); i < len(columns); i++ {
			padded[i] = value.Text("")
		}
		values = padded
	case len(values) > len(columns):
		values = values[:len(columns)]
	}
	return Row{columns: columns, values: values}
}

// Columns returns the row's column names in header order.
func (r Row) Columns() []string { return r.columns }

// Value looks up the cell for a column name. When the header carries
// duplicate names, the last occurrence wins, matching map-construction
// semantics of writing columns left to right.
func (r Row) Value(column string) (value.Value, bool) {
	for i := len(r.columns) - 1; i >= 0; i-- {
		if r.columns[i] == column {
			return r.values[i], true
		}
	}
	return value.Value{}, false
}

// At returns the cell at a positional index.
func (r Row) At(i int) value.Value { return r.values[i] }

// Len returns the number of cells, which always equals the header width.
func (r Row) Len() int { return len(r.values) }

// Table is a header plus the rows sharing that header.
type Table struct {
	Columns []string
	Rows    []Row
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }
