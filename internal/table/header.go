package table

import (
	"fmt"

	"tablescan/internal/value"
)

// HeaderCheck is the result of validating a candidate header line.
type HeaderCheck struct {
	IsHeader bool
	Reason   string
}

// ValidateHeader decides whether the fields of a first line form a genuine
// header or are themselves data.
//
// Policy: a field is "data-like" when it parses as integer, decimal, or
// timestamp. Plain text does not count — header names are text, but so are
// ordinary text columns, so counting text would reject legitimate headers.
// The line is rejected only when data-like fields form a strict majority;
// exactly half is accepted.
func ValidateHeader(fields []string) HeaderCheck {
	dataLike := 0
	for _, f := range fields {
		if value.DataLike(f) {
			dataLike++
		}
	}

	if dataLike*2 > len(fields) {
		return HeaderCheck{
			IsHeader: false,
			Reason: fmt.Sprintf("first line looks like data: %d of %d fields parse as typed values",
				dataLike, len(fields)),
		}
	}
	return HeaderCheck{IsHeader: true}
}
