package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tablescan/internal/value"
)

// ErrEmptyInput reports that the input contained no lines to parse.
var ErrEmptyInput = errors.New("empty input: no lines to parse")

// HeaderError reports that the first line was rejected as a header.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string {
	return "header looks like data: " + e.Reason
}

// ReadError wraps an unexpected fault raised while acquiring input lines.
// Expected shape problems get their own types; this is the catch-all for
// underlying I/O failures surfaced at the parse boundary.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read input: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// Parser converts raw text lines into a Table. The zero value parses
// comma-delimited input.
type Parser struct {
	// Delimiter splits lines into fields. Zero means ','. No quoting or
	// escaping is supported; a delimiter inside a cell corrupts that row's
	// field alignment, which is an accepted limitation.
	Delimiter rune
}

// Parse assembles a Table from raw lines.
//
// Blank lines are skipped. The first non-blank line must pass header
// validation; every later line becomes exactly one row. Short rows are padded
// with empty text cells, long rows are truncated at the header width — rows
// are never dropped for their shape.
func (p Parser) Parse(lines []string) (*Table, error) {
	delim := p.Delimiter
	if delim == 0 {
		delim = ','
	}

	var header []string
	rows := make([]Row, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitFields(line, delim)

		if header == nil {
			if check := ValidateHeader(fields); !check.IsHeader {
				return nil, &HeaderError{Reason: check.Reason}
			}
			header = fields
			continue
		}

		values := make([]value.Value, 0, len(fields))
		for _, f := range fields {
			values = append(values, value.Parse(f))
		}
		rows = append(rows, NewRow(header, values))
	}

	if header == nil {
		return nil, ErrEmptyInput
	}

	return &Table{Columns: header, Rows: rows}, nil
}

// ParseReader reads all lines from r and parses them. Scanner faults are
// converted into a *ReadError rather than propagating raw.
func (p Parser) ParseReader(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var lines []string
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, &ReadError{Err: fmt.Errorf("scan lines: %w", err)}
	}

	return p.Parse(lines)
}

// Parse is the package-level convenience for comma-delimited input.
func Parse(lines []string) (*Table, error) {
	return Parser{}.Parse(lines)
}

// splitFields splits one line on the delimiter and trims edge whitespace from
// each field.
func splitFields(line string, delim rune) []string {
	fields := strings.Split(line, string(delim))
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
