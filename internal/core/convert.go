package core

// convert.go provides the coercion rules between raw table cells and the
// text/number views the classification rules read.
//
// The rules follow what spreadsheet users expect from the dashboard:
//   - Text predicates see absent cells as ""
//   - Quantities treat anything non-numeric as 0
//   - Age comparisons fail (rather than error) on non-numeric values
//   - Ingested cells that look like decimal numbers become numbers

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericRegex validates that a string is a decimal number literal.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// maxSafeInteger bounds the values InferCell will type as numbers.
// Beyond it float64 cannot hold every integer, so distinct identifiers
// would collapse to one value.
const maxSafeInteger = 1 << 53

var radixLiterals = []struct {
	prefix string
	base   int
}{
	{"0x", 16}, {"0X", 16},
	{"0o", 8}, {"0O", 8},
	{"0b", 2}, {"0B", 2},
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Num: f}
}

// CellOf converts a loosely typed Go value into a Cell.
// nil becomes an absent cell; numeric kinds become numbers; everything
// else is formatted as text.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case bool:
		return String(strconv.FormatBool(x))
	default:
		return String(fmt.Sprint(x))
	}
}

// InferCell types a raw ingested value: empty is absent, a decimal
// literal within ±2^53 is a number, anything else stays text.
func InferCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	trimmed := strings.TrimSpace(raw)
	if numericRegex.MatchString(trimmed) {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err == nil && f > -maxSafeInteger && f < maxSafeInteger {
			return Number(f)
		}
	}
	return String(raw)
}

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool {
	return c.Kind == CellAbsent
}

// Text returns the text view of a cell.
// Absent cells and a numeric zero read as "".
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		if c.Num == 0 || math.IsNaN(c.Num) {
			return ""
		}
		return formatNumber(c.Num)
	default:
		return ""
	}
}

// Number returns the numeric view of a cell and whether it is a number.
// Strings are trimmed; an empty string is 0.
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Num, !math.IsNaN(c.Num)
	case CellString:
		return parseNumber(c.Str)
	default:
		return 0, false
	}
}

// Quantity returns the numeric view of a cell, or 0 when it is not a number.
func (c Cell) Quantity() float64 {
	if f, ok := c.Number(); ok {
		return f
	}
	return 0
}

// String implements fmt.Stringer for display and export. Unlike Text,
// a numeric zero prints as "0".
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return formatNumber(c.Num)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value: nil, string or float64.
func (c Cell) Value() any {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return c.Num
	default:
		return nil
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumber converts numeric text the way spreadsheet formulas do:
// surrounding whitespace is ignored, blank text is 0, decimal and
// 0x/0o/0b literals and Infinity are accepted, anything else is not a number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || unicode.IsSpace(r)
	})
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	for _, lit := range radixLiterals {
		if strings.HasPrefix(s, lit.prefix) {
			u, err := strconv.ParseUint(s[len(lit.prefix):], lit.base, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}
