package core

// NewTable types raw cell text into records. Empty cells become absent and
// decimal literals become numbers (see InferCell).
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Records: make([]Record, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, raw := range row {
			cells[i] = InferCell(raw)
		}
		t.Records = append(t.Records, NewRecord(columns, cells))
	}
	return t
}
