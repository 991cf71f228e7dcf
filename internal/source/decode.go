package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NewDecodingReader wraps r so that bytes in the named legacy charset come
// out as UTF-8. Supported names:
//
//	"", "utf8", "utf-8"       — passthrough
//	"latin1", "iso-8859-1"    — ISO 8859-1
//	"windows-1252", "cp1252"  — Windows code page 1252
//
// Unknown names are an error; silently misdecoding input would corrupt every
// downstream classification.
func NewDecodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
