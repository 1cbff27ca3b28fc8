// Package ingest turns uploaded CSV and Excel exports into raw sheets.
//
// A Sheet holds cleaned header names and the untyped cell text of every
// non-blank row. Typing the cells is left to the caller.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than CSV and Excel.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned by a limited reader once the limit is passed.
	ErrFileTooLarge = errors.New("file too large")
)

// Format identifies a supported file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// extensions maps lower-cased file extensions to formats. Legacy BIFF
// .xls workbooks are not listed: excelize reads OOXML only.
var extensions = map[string]Format{
	".csv":  FormatCSV,
	".xlsx": FormatXLSX,
	".xlsm": FormatXLSX,
}

// Sheet is one parsed table.
type Sheet struct {
	Columns []string
	Rows    [][]string
}

// DetectFormat returns the format implied by a file name.
func DetectFormat(fileName string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%s: %w", fileName, ErrUnsupportedFormat)
}

// Supported reports whether a file name has a readable extension.
func Supported(fileName string) bool {
	_, err := DetectFormat(fileName)
	return err == nil
}

// Read parses r according to the extension of fileName.
func Read(fileName string, r io.Reader) (*Sheet, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	var sheet *Sheet
	switch format {
	case FormatCSV:
		sheet, err = ReadCSV(r)
	case FormatXLSX:
		sheet, err = ReadXLSX(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	return sheet, nil
}

// newSheet builds a sheet from raw rows where the first row is the header.
// Blank rows are dropped.
func newSheet(rows [][]string) (*Sheet, error) {
	headerAt := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrEmptyFile
	}

	s := &Sheet{Columns: cleanHeader(rows[headerAt])}
	for _, row := range rows[headerAt+1:] {
		if isBlankRow(row) {
			continue
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// cleanHeader strips spreadsheet artifacts from header names, names blank
// headers by position and suffixes repeated names with _1, _2, ...
// Every returned name is unique, including generated ones.
func cleanHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := cleanCell(h)
		if name == "" {
			name = "Column" + strconv.Itoa(i+1)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				name = base + "_" + strconv.Itoa(n)
				n++
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}

// cleanCell removes common CSV artifacts from a header cell:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func cleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
