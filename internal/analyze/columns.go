// Package analyze computes descriptive and grouped statistics over the
// numeric columns of a parsed table.
//
// All arithmetic uses decimal values end to end; nothing here touches float64.
// Every function takes an immutable row slice and returns fresh derived
// structures, so repeated passes (sampling, full stats, grouping) observe the
// same data.
package analyze

import (
	"github.com/shopspring/decimal"

	"tablescan/internal/table"
)

// sampleRows bounds how many leading rows numeric-column detection inspects.
// This is a heuristic, not a guarantee: later rows may break the pattern, and
// Stats silently skips their non-numeric cells rather than reporting it.
const sampleRows = 5

// ColumnStats are the descriptive statistics for one column's numeric cells.
type ColumnStats struct {
	Sum   decimal.Decimal
	Avg   decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
	Count int
}

// NumericColumns discovers which columns look uniformly numeric, judging from
// the first sampleRows rows (or all rows when fewer). A column qualifies only
// when every sampled cell is an integer or a decimal; timestamps and text
// disqualify it. An empty table yields no columns. The result preserves
// header order for deterministic reporting.
func NumericColumns(t *table.Table) []string {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}

	sample := t.Rows
	if len(sample) > sampleRows {
		sample = sample[:sampleRows]
	}

	var out []string
	for _, col := range t.Columns {
		numeric := true
		for _, row := range sample {
			v, ok := row.Value(col)
			if !ok || !v.IsNumeric() {
				numeric = false
				break
			}
		}
		if numeric {
			out = append(out, col)
		}
	}
	return out
}

// Stats computes sum, average, min, max, and count over a column's numeric
// cells. Cells that are timestamps, text, or absent are skipped silently.
// When no numeric cell exists at all, ok is false — callers must not confuse
// "no data" with zero-valued stats.
func Stats(rows []table.Row, column string) (ColumnStats, bool) {
	var (
		sum   decimal.Decimal
		min   decimal.Decimal
		max   decimal.Decimal
		count int
	)

	for _, row := range rows {
		v, ok := row.Value(column)
		if !ok {
			continue
		}
		d, ok := v.Numeric()
		if !ok {
			continue
		}

		if count == 0 {
			min, max = d, d
		} else {
			if d.LessThan(min) {
				min = d
			}
			if d.GreaterThan(max) {
				max = d
			}
		}
		sum = sum.Add(d)
		count++
	}

	if count == 0 {
		return ColumnStats{}, false
	}

	return ColumnStats{
		Sum:   sum,
		Avg:   sum.Div(decimal.NewFromInt(int64(count))),
		Min:   min,
		Max:   max,
		Count: count,
	}, true
}

// TableProfile is the full per-table analysis result handed to reporting and
// export. It is ephemeral: recomputed per run, never persisted by the core.
type TableProfile struct {
	RowCount       int
	NumericColumns []string
	// Stats holds per-column statistics for every numeric column that had at
	// least one numeric cell, keyed by column name. Iterate NumericColumns
	// for deterministic order.
	Stats map[string]ColumnStats
}

// Profile runs numeric-column discovery and per-column stats over a table.
func Profile(t *table.Table) TableProfile {
	p := TableProfile{
		RowCount:       t.RowCount(),
		NumericColumns: NumericColumns(t),
		Stats:          make(map[string]ColumnStats),
	}
	for _, col := range p.NumericColumns {
		if st, ok := Stats(t.Rows, col); ok {
			p.Stats[col] = st
		}
	}
	return p
}
