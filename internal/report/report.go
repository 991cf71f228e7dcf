// Package report renders analysis results as plain text for the console.
// The core analysis packages return structured results and print nothing;
// this is the only place that formats them.
package report

import (
	"fmt"
	"io"
	"strings"

	"tablescan/internal/analyze"
)

// Render writes the full analysis report: row count, the numeric column set,
// per-column statistics, and (when groups is non-nil) grouped sums.
//
// Column order follows profile.NumericColumns and group order follows the
// aggregator's first-encounter order, so output is deterministic for a given
// input.
func Render(w io.Writer, profile analyze.TableProfile, groups []analyze.GroupStat, groupColumn, valueColumn string) {
	fmt.Fprintf(w, "rows=%d\n", profile.RowCount)
	fmt.Fprintf(w, "numeric_columns=%s\n", strings.Join(profile.NumericColumns, ","))

	if len(profile.NumericColumns) > 0 {
		fmt.Fprintf(w, "\n%-20s\t%-12s\t%-12s\t%-12s\t%-12s\t%s\n",
			"column", "sum", "avg", "min", "max", "count")
		for _, col := range profile.NumericColumns {
			st, ok := profile.Stats[col]
			if !ok {
				fmt.Fprintf(w, "%-20s\t(no numeric values)\n", col)
				continue
			}
			fmt.Fprintf(w, "%-20s\t%-12s\t%-12s\t%-12s\t%-12s\t%d\n",
				col, st.Sum, st.Avg, st.Min, st.Max, st.Count)
		}
	}

	if groups != nil {
		fmt.Fprintf(w, "\ngroup_by=%s\tsum_of=%s\n", groupColumn, valueColumn)
		fmt.Fprintf(w, "%-20s\t%-12s\t%s\n", "key", "sum", "count")
		for _, g := range groups {
			fmt.Fprintf(w, "%-20s\t%-12s\t%d\n", g.Key, g.Sum, g.Count)
		}
	}
}
