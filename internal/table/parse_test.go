package table

import (
	"errors"
	"strings"
	"testing"

	"tablescan/internal/value"
)

//
// Parse
//

// TestParseBasic verifies header extraction and typed row assembly.
func TestParseBasic(t *testing.T) {
	t.Parallel()

	tab, err := Parse([]string{"Name,Price,Qty", "Widget,9.99,3", "Gadget,15.50,1"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if got := tab.Columns; len(got) != 3 || got[0] != "Name" {
		t.Fatalf("Columns = %v, want [Name Price Qty]", got)
	}
	if tab.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", tab.RowCount())
	}

	v, ok := tab.Rows[0].Value("Price")
	if !ok || v.Kind != value.KindDecimal {
		t.Fatalf("Price cell = %+v, want decimal", v)
	}
	v, ok = tab.Rows[0].Value("Qty")
	if !ok || v.Kind != value.KindInteger || v.Int != 3 {
		t.Fatalf("Qty cell = %+v, want integer 3", v)
	}
}

// TestParseEmptyInput verifies zero lines yield ErrEmptyInput.
func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := Parse(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Parse(nil) err = %v, want ErrEmptyInput", err)
	}
	if _, err := Parse([]string{"", "   "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Parse(blank lines) err = %v, want ErrEmptyInput", err)
	}
}

// TestParseHeaderLooksLikeData verifies the typed header failure.
func TestParseHeaderLooksLikeData(t *testing.T) {
	t.Parallel()

	_, err := Parse([]string{"10,20", "foo,bar"})

	var he *HeaderError
	if !errors.As(err, &he) {
		t.Fatalf("err = %v, want *HeaderError", err)
	}
	if !strings.Contains(he.Reason, "2 of 2") {
		t.Fatalf("Reason = %q, want field counts", he.Reason)
	}
}

// TestParseShortRow verifies missing trailing cells are padded with empty
// text instead of dropping the row.
func TestParseShortRow(t *testing.T) {
	t.Parallel()

	tab, err := Parse([]string{"A,B", "1,2", "3"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if tab.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2 (short row must not be dropped)", tab.RowCount())
	}

	v, ok := tab.Rows[1].Value("B")
	if !ok {
		t.Fatalf("short row missing column B")
	}
	if v.Kind != value.KindText || v.Text != "" {
		t.Fatalf("padded cell = %+v, want empty text", v)
	}
}

// TestParseLongRow verifies extra cells beyond the header are ignored.
func TestParseLongRow(t *testing.T) {
	t.Parallel()

	tab, err := Parse([]string{"A,B", "1,2,3,4"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := tab.Rows[0].Len(); got != 2 {
		t.Fatalf("row width = %d, want 2", got)
	}
}

// TestParseDuplicateHeader verifies the documented last-write-wins lookup for
// duplicate column names, while header order is preserved for display.
func TestParseDuplicateHeader(t *testing.T) {
	t.Parallel()

	tab, err := Parse([]string{"X,X", "1,2"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tab.Columns) != 2 {
		t.Fatalf("Columns = %v, want both occurrences kept", tab.Columns)
	}

	v, ok := tab.Rows[0].Value("X")
	if !ok || v.Int != 2 {
		t.Fatalf("duplicate lookup = %+v, want last occurrence (2)", v)
	}
}

// TestParseTrimsFields verifies edge whitespace is stripped before
// classification.
func TestParseTrimsFields(t *testing.T) {
	t.Parallel()

	tab, err := Parse([]string{"A, B", " 1 , hello "})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if tab.Columns[1] != "B" {
		t.Fatalf("Columns = %v, want trimmed names", tab.Columns)
	}
	v, _ := tab.Rows[0].Value("A")
	if v.Kind != value.KindInteger {
		t.Fatalf("cell A = %+v, want integer after trim", v)
	}
}

// TestParseCustomDelimiter verifies the Parser.Delimiter option.
func TestParseCustomDelimiter(t *testing.T) {
	t.Parallel()

	tab, err := Parser{Delimiter: ';'}.Parse([]string{"a;b", "1;2"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tab.Columns) != 2 || tab.Columns[1] != "b" {
		t.Fatalf("Columns = %v, want [a b]", tab.Columns)
	}
}

//
// ParseReader
//

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk unplugged")
}

// TestParseReaderFault verifies unexpected read faults surface as *ReadError
// rather than propagating raw.
func TestParseReaderFault(t *testing.T) {
	t.Parallel()

	_, err := Parser{}.ParseReader(failingReader{})

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ReadError", err)
	}
	if !strings.Contains(re.Error(), "disk unplugged") {
		t.Fatalf("ReadError = %q, want underlying message", re.Error())
	}
}

// TestParseReaderBOM verifies a UTF-8 BOM on the first line is stripped before
// header validation.
func TestParseReaderBOM(t *testing.T) {
	t.Parallel()

	tab, err := Parser{}.ParseReader(strings.NewReader("\uFEFFA,B\n1,2\n"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}
	if tab.Columns[0] != "A" {
		t.Fatalf("Columns = %v, want BOM stripped from first name", tab.Columns)
	}
}
