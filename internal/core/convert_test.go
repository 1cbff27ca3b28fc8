package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCell(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"", Cell{}},
		{"12", Number(12)},
		{" 3.5 ", Number(3.5)},
		{"-0.25", Number(-0.25)},
		{"1e3", Number(1000)},
		{".5", Number(0.5)},
		{"0x10", String("0x10")},
		{"12 units", String("12 units")},
		{"  ", String("  ")},
		{"Open", String("Open")},
		{"9007199254740991", Number(9007199254740991)},
		{"9007199254740992", String("9007199254740992")},
		{"-12345678901234567891", String("-12345678901234567891")},
		{"1e300", String("1e300")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCell(tt.raw))
		})
	}
}

func TestCell_Text(t *testing.T) {
	assert.Equal(t, "", Cell{}.Text())
	assert.Equal(t, "", Number(0).Text())
	assert.Equal(t, "", Number(math.NaN()).Text())
	assert.Equal(t, "4.5", Number(4.5).Text())
	assert.Equal(t, "Infinity", Number(math.Inf(1)).Text())
	assert.Equal(t, " x ", String(" x ").Text())
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "0", Number(0).String())
	assert.Equal(t, "", Cell{}.String())
	assert.Equal(t, "-Infinity", Number(math.Inf(-1)).String())
}

func TestCell_Number(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   float64
		wantOK bool
	}{
		{"absent", Cell{}, 0, false},
		{"number", Number(7), 7, true},
		{"nan", Number(math.NaN()), math.NaN(), false},
		{"numeric text", String(" 42 "), 42, true},
		{"blank text", String("   "), 0, true},
		{"hex", String("0x1F"), 31, true},
		{"octal", String("0o17"), 15, true},
		{"binary", String("0b101"), 5, true},
		{"bad hex", String("0xZZ"), 0, false},
		{"infinity", String("Infinity"), math.Inf(1), true},
		{"negative infinity", String("-Infinity"), math.Inf(-1), true},
		{"scientific", String("2.5e2"), 250, true},
		{"bom", String("\uFEFF5"), 5, true},
		{"words", String("five"), 0, false},
		{"currency", String("$5"), 0, false},
		{"overflow", String("1e400"), math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Number()
			assert.Equal(t, tt.wantOK, ok)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCell_Quantity(t *testing.T) {
	assert.Equal(t, 0.0, Cell{}.Quantity())
	assert.Equal(t, 0.0, String("abc").Quantity())
	assert.Equal(t, 3.0, String("3").Quantity())
	assert.Equal(t, 2.5, Number(2.5).Quantity())
}

func TestCellOf(t *testing.T) {
	assert.Equal(t, Cell{}, CellOf(nil))
	assert.Equal(t, Number(3), CellOf(3))
	assert.Equal(t, Number(3), CellOf(int64(3)))
	assert.Equal(t, Number(1.5), CellOf(float32(1.5)))
	assert.Equal(t, String("true"), CellOf(true))
	assert.Equal(t, String("x"), CellOf("x"))
	assert.Equal(t, Number(9), CellOf(Number(9)))
	assert.Equal(t, String("[1 2]"), CellOf([]int{1, 2}))
}

func TestCell_Value(t *testing.T) {
	assert.Nil(t, Cell{}.Value())
	assert.Equal(t, "a", String("a").Value())
	assert.Equal(t, 2.0, Number(2).Value())
	assert.True(t, Cell{}.IsAbsent())
	assert.False(t, String("").IsAbsent())
}
