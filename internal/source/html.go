package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLTableLines extracts the first <table> in an HTML document and flattens
// it into comma-joined lines: one line per <tr>, one field per <th>/<td>.
//
// The output feeds the same parser as a plain text file, so the usual
// limitation applies: a cell whose text contains a comma corrupts that row's
// field alignment. Cell text is whitespace-normalized; nested markup is
// reduced to its text content.
func HTMLTableLines(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, fmt.Errorf("no <table> element found in document")
	}

	var lines []string
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normalizeCellText(cell.Text()))
		})
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, ","))
		}
	})

	return lines, nil
}

// normalizeCellText collapses internal whitespace runs (including newlines
// from nested markup) into single spaces and trims the edges.
func normalizeCellText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
