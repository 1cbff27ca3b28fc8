package core

// validation.go reports table problems that do not stop ingestion.
//
// Every recognized field is optional, so nothing here is fatal. Warnings
// are attached to the snapshot so the dashboard can explain odd numbers:
//  1. Header checks: recognized columns that are missing or differ only by case
//  2. Value checks: Quantity and Age cells that are not numbers

import (
	"fmt"
	"strings"
)

// ValidationWarning is one non-fatal problem found in a table.
type ValidationWarning struct {
	Field   string `json:"field,omitempty"`
	Rows    int    `json:"rows,omitempty"` // Affected row count, 0 for header warnings
	Message string `json:"message"`
}

func (w ValidationWarning) String() string {
	if w.Field != "" {
		return fmt.Sprintf("%s: %s", w.Field, w.Message)
	}
	return w.Message
}

// numericFields are the recognized fields read as numbers.
var numericFields = []string{FieldQuantity, FieldAge}

// ValidateHeaders reports recognized columns that are absent from the header.
// A header that matches only case-insensitively gets a hint instead, since
// field names are read case-sensitively.
func ValidateHeaders(columns []string) []ValidationWarning {
	exact := make(map[string]bool, len(columns))
	folded := make(map[string]string, len(columns))
	for _, c := range columns {
		exact[c] = true
		folded[strings.ToLower(c)] = c
	}

	var warnings []ValidationWarning
	for _, field := range RecognizedFields {
		if exact[field] {
			continue
		}
		if got, ok := folded[strings.ToLower(field)]; ok {
			warnings = append(warnings, ValidationWarning{
				Field:   field,
				Message: fmt.Sprintf("column %q is ignored; rename it to %q", got, field),
			})
			continue
		}
		warnings = append(warnings, ValidationWarning{
			Field:   field,
			Message: "column not found; rows read it as empty",
		})
	}
	return warnings
}

// ValidateValues counts present Quantity and Age cells that are not numbers.
func ValidateValues(records []Record) []ValidationWarning {
	var warnings []ValidationWarning
	for _, field := range numericFields {
		bad := 0
		for _, r := range records {
			c := r.Get(field)
			if c.IsAbsent() {
				continue
			}
			if _, ok := c.Number(); !ok {
				bad++
			}
		}
		if bad > 0 {
			warnings = append(warnings, ValidationWarning{
				Field:   field,
				Rows:    bad,
				Message: fmt.Sprintf("%d rows have a non-numeric value", bad),
			})
		}
	}
	return warnings
}

// ValidateTable runs every check against an ingested table.
func ValidateTable(t *Table) []ValidationWarning {
	warnings := ValidateHeaders(t.Columns)
	return append(warnings, ValidateValues(t.Records)...)
}
