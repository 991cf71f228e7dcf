// Package value classifies raw table cells into typed values.
//
// Classification is total: every input string maps to exactly one Kind, with
// Text as the universal fallback. Parse never fails, which lets the table
// layer treat cell-level ambiguity as a non-error.
//
// Numeric cells use github.com/shopspring/decimal rather than float64 so that
// downstream summation over currency-like data stays exact.
package value

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind enumerates the closed set of cell classifications.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Value is one classified cell. Exactly one payload field is meaningful,
// selected by Kind. Values are immutable once constructed.
type Value struct {
	Kind Kind

	Int    int64           // KindInteger
	Dec    decimal.Decimal // KindDecimal
	Time   time.Time       // KindTimestamp
	Layout string          // KindTimestamp: layout that matched during Parse

	Text string // KindText: the verbatim field
}

// dateLayouts and tsLayouts are the permissive, locale-invariant grammars
// accepted for timestamp cells. Order matters only for which layout gets
// recorded; all layouts are equally "timestamp".
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
}

var tsLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
	"02.01.2006 15:04:05",
	"2006-01-02 15:04",
}

// Parse classifies one raw field. Attempts are ordered and first-match-wins:
//
//  1. integer — the whole field is a base-10 signed integer within 32-bit range
//  2. decimal — base-10 real number, fixed or exponential notation
//  3. timestamp — any of the known date/time layouts
//  4. text — verbatim fallback, never fails
//
// The ordering is load-bearing: an integer literal must not be captured as
// decimal or timestamp, and a plain decimal must not be misread as a date.
func Parse(field string) Value {
	if n, err := strconv.ParseInt(field, 10, 32); err == nil {
		return Value{Kind: KindInteger, Int: n}
	}

	if looksNumeric(field) {
		if d, err := decimal.NewFromString(field); err == nil {
			return Value{Kind: KindDecimal, Dec: d}
		}
	}

	if t, layout, ok := parseTimestampLoose(field); ok {
		return Value{Kind: KindTimestamp, Time: t, Layout: layout}
	}

	return Value{Kind: KindText, Text: field}
}

// Integer returns an integer Value.
func Integer(n int64) Value { return Value{Kind: KindInteger, Int: n} }

// Decimal returns a decimal Value.
func Decimal(d decimal.Decimal) Value { return Value{Kind: KindDecimal, Dec: d} }

// Timestamp returns a timestamp Value with the default display layout.
func Timestamp(t time.Time) Value {
	return Value{Kind: KindTimestamp, Time: t, Layout: "2006-01-02 15:04:05"}
}

// Text returns a text Value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// String renders the natural display representation of a Value: integers as
// decimal digits, decimals with full precision, timestamps in the layout they
// were parsed with, text verbatim.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindDecimal:
		return v.Dec.String()
	case KindTimestamp:
		layout := v.Layout
		if layout == "" {
			layout = "2006-01-02 15:04:05"
		}
		return v.Time.Format(layout)
	default:
		return v.Text
	}
}

// IsNumeric reports whether the value participates in numeric aggregation.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInteger || v.Kind == KindDecimal
}

// Numeric coerces an integer or decimal value to its decimal representation.
// ok is false for timestamp and text values.
func (v Value) Numeric() (decimal.Decimal, bool) {
	switch v.Kind {
	case KindInteger:
		return decimal.NewFromInt(v.Int), true
	case KindDecimal:
		return v.Dec, true
	default:
		return decimal.Decimal{}, false
	}
}

// looksNumeric is a cheap pre-filter before handing the field to the decimal
// parser. It rejects fields containing characters that can never appear in a
// base-10 real number, so date-like strings ("02.01.2006" aside) and free text
// skip the allocation-heavy parse.
//
// Note "02.01.2006" passes this filter but fails decimal parsing (two dots),
// falling through to the timestamp attempt as intended.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return true
}

func parseTimestampLoose(s string) (time.Time, string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, "", false
	}
	for _, lay := range tsLayouts {
		if t, err := time.Parse(lay, trimmed); err == nil {
			return t, lay, true
		}
	}
	for _, lay := range dateLayouts {
		if t, err := time.Parse(lay, trimmed); err == nil {
			return t, lay, true
		}
	}
	return time.Time{}, "", false
}

// DataLike reports whether a field parses as something narrower than text.
// Header validation uses this as its "looks like data" predicate: header names
// are plain text, so only typed parses count against a candidate header line.
func DataLike(field string) bool {
	return Parse(field).Kind != KindText
}
