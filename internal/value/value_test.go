package value

import (
	"testing"

	"github.com/shopspring/decimal"
)

//
// Parse
//

// TestParseKinds verifies the ordered classification rules: integer before
// decimal before timestamp, with text as the total fallback.
func TestParseKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"zero", "0", KindInteger},
		{"positive integer", "42", KindInteger},
		{"negative integer", "-17", KindInteger},
		{"explicit plus sign", "+3", KindInteger},
		{"int32 max", "2147483647", KindInteger},
		{"int32 min", "-2147483648", KindInteger},
		{"beyond int32 falls to decimal", "2147483648", KindDecimal},
		{"plain decimal", "12.50", KindDecimal},
		{"negative decimal", "-0.001", KindDecimal},
		{"leading dot", ".5", KindDecimal},
		{"exponent notation", "1.5e3", KindDecimal},
		{"iso date", "2023-01-02", KindTimestamp},
		{"dotted date", "02.01.2006", KindTimestamp},
		{"slash date", "01/02/2023", KindTimestamp},
		{"timestamp", "2023-01-02 15:04:05", KindTimestamp},
		{"rfc3339", "2023-01-02T15:04:05Z", KindTimestamp},
		{"plain text", "hello", KindText},
		{"empty", "", KindText},
		{"whitespace only", "   ", KindText},
		{"mixed alnum", "12abc", KindText},
		{"invalid date", "2023-99-99", KindText},
		{"two signs", "+-1", KindText},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tt.in); got.Kind != tt.want {
				t.Fatalf("Parse(%q).Kind = %v, want %v", tt.in, got.Kind, tt.want)
			}
		})
	}
}

// TestParseIntegerPayload verifies the integer payload is the exact literal.
func TestParseIntegerPayload(t *testing.T) {
	t.Parallel()

	v := Parse("-2048")
	if v.Kind != KindInteger || v.Int != -2048 {
		t.Fatalf("Parse(-2048) = %+v, want integer -2048", v)
	}
}

// TestParseDecimalPrecision verifies decimal cells keep the literal's digits
// exactly, with no binary-float drift.
func TestParseDecimalPrecision(t *testing.T) {
	t.Parallel()

	v := Parse("0.1")
	want := decimal.RequireFromString("0.1")
	if v.Kind != KindDecimal || !v.Dec.Equal(want) {
		t.Fatalf("Parse(0.1) = %+v, want exact decimal 0.1", v)
	}

	// 0.1+0.2 is the classic float64 failure; decimal must sum exactly.
	sum := Parse("0.1").Dec.Add(Parse("0.2").Dec)
	if got := sum.String(); got != "0.3" {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", got)
	}
}

// TestParseTotal verifies that no input fails classification: anything
// unparseable comes back as Text with the field unchanged.
func TestParseTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "NaN-ish?", "12,5", "--", "\x00", "héllo wörld"}
	for _, in := range inputs {
		v := Parse(in)
		if v.Kind != KindText || v.Text != in {
			t.Fatalf("Parse(%q) = %+v, want verbatim text", in, v)
		}
	}
}

//
// String / round trip
//

// TestStringRoundTrip verifies that rendering a Value and re-parsing the
// result yields the same Kind. Canonical forms may normalize digits (e.g.
// "1.50" renders as "1.5"), but the classification must be stable.
func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"42", "-17", "2147483647",
		"12.5", "-0.001", "3.14159",
		"2023-01-02", "2023-01-02 15:04:05",
		"hello", "n/a", "",
	}

	for _, in := range inputs {
		first := Parse(in)
		second := Parse(first.String())
		if second.Kind != first.Kind {
			t.Fatalf("round trip %q: kind %v -> %v", in, first.Kind, second.Kind)
		}
	}
}

// TestStringForms verifies the natural display representation per kind.
func TestStringForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"integer digits", "0042", "42"},
		{"decimal full precision", "3.14159", "3.14159"},
		{"date keeps parsed layout", "2023-01-02", "2023-01-02"},
		{"dotted date keeps layout", "02.01.2006", "02.01.2006"},
		{"text verbatim", "Widget A", "Widget A"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tt.in).String(); got != tt.want {
				t.Fatalf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

//
// Numeric
//

// TestNumeric verifies integer-to-decimal coercion and the non-numeric cases.
func TestNumeric(t *testing.T) {
	t.Parallel()

	d, ok := Parse("7").Numeric()
	if !ok || !d.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("Numeric(7) = (%s, %v), want (7, true)", d, ok)
	}

	if _, ok := Parse("2023-01-02").Numeric(); ok {
		t.Fatalf("timestamp reported as numeric")
	}
	if _, ok := Parse("abc").Numeric(); ok {
		t.Fatalf("text reported as numeric")
	}
}

//
// DataLike
//

// TestDataLike verifies the header-validation predicate: typed parses count,
// text does not.
func TestDataLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"10", true},
		{"1.5", true},
		{"2023-01-02", true},
		{"Price", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DataLike(tt.in); got != tt.want {
			t.Fatalf("DataLike(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
