// Package source acquires the raw text lines the table parser consumes.
//
// The parser itself performs no I/O; everything filesystem- or
// document-shaped lives here: reading a local file, decoding legacy
// charsets, and flattening an HTML table into delimiter-joined lines.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadFileLines opens path, decodes it with the named encoding (see
// NewDecodingReader), and returns its lines. A UTF-8 BOM on the first line is
// stripped.
func ReadFileLines(path, encoding string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r, err := NewDecodingReader(f, encoding)
	if err != nil {
		return nil, err
	}
	return Lines(r)
}

// Lines reads all lines from r.
func Lines(r io.Reader) ([]string, error) {
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
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return lines, nil
}
