package analyze

import (
	"github.com/shopspring/decimal"

	"tablescan/internal/table"
)

// UnknownGroup is the sentinel key for rows with no usable value in the
// group column.
const UnknownGroup = "Unknown"

// GroupStat is one partition's aggregate over the value column.
type GroupStat struct {
	Key   string
	Sum   decimal.Decimal
	Count int
}

// GroupBy partitions rows by the display form of their group-column value and
// sums the value column per partition.
//
// Rows whose group cell is absent or blank fall into the "Unknown" partition.
// Partitions with no numeric cells still appear, with Sum=0 and Count=0 —
// keys are never silently dropped. Output order is first-encounter order of
// each distinct key, not sorted.
func GroupBy(rows []table.Row, groupColumn, valueColumn string) []GroupStat {
	partitions := make(map[string][]table.Row)
	var order []string

	for _, row := range rows {
		key := UnknownGroup
		if v, ok := row.Value(groupColumn); ok {
			if s := v.String(); s != "" {
				key = s
			}
		}

		if _, seen := partitions[key]; !seen {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], row)
	}

	out := make([]GroupStat, 0, len(order))
	for _, key := range order {
		gs := GroupStat{Key: key, Sum: decimal.Zero}
		if st, ok := Stats(partitions[key], valueColumn); ok {
			gs.Sum = st.Sum
			gs.Count = st.Count
		}
		out = append(out, gs)
	}
	return out
}
