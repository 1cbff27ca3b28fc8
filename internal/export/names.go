package export

import (
	"strings"
	"time"
	"unicode"
)

// DefaultPrefix names exports that are not tied to one dataset.
const DefaultPrefix = "ISS_Export"

// DatasetFileName turns a dataset label into an .xlsx file name.
// Whitespace runs become one underscore and path separators are dropped,
// so "RBS / PSAS" becomes "RBS_PSAS.xlsx".
func DatasetFileName(label string) string {
	label = strings.NewReplacer("/", " ", "\\", " ").Replace(label)
	name := strings.Join(strings.FieldsFunc(label, unicode.IsSpace), "_")
	if name == "" {
		name = DefaultPrefix
	}
	return name + ".xlsx"
}

// DatedFileName returns prefix_YYYY-MM-DD.ext using the UTC date of t.
func DatedFileName(prefix, ext string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ext = strings.TrimPrefix(ext, ".")
	return prefix + "_" + t.UTC().Format(time.DateOnly) + "." + ext
}
