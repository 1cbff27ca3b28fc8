package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader strips a leading byte order mark and replaces invalid
// UTF-8 with U+FFFD. UTF-16 input with a BOM is transcoded to UTF-8.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// ReadCSV parses a comma-separated file. Rows may have any number of
// fields and stray quotes are tolerated.
func ReadCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(NewUTF8Reader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return newSheet(rows)
}
