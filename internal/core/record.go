package core

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Record is one issue row. The eight recognized fields are held by name;
// any other column is kept verbatim in Extra for display and export.
type Record struct {
	Title            Cell
	Item             Cell
	PhysicalLocation Cell
	PendingReason    Cell
	IssueURL         Cell
	Quantity         Cell
	Status           Cell
	Age              Cell

	// Extra holds unrecognized columns keyed by header name.
	Extra map[string]Cell

	// columns is the header order of the table the record came from.
	columns []string
}

// NewRecord builds a record from a header row and its cells.
// Missing trailing cells are absent; surplus cells are dropped.
// Duplicate header names keep the last value.
func NewRecord(columns []string, cells []Cell) Record {
	r := Record{columns: columns}
	for i, col := range columns {
		if i >= len(cells) {
			break
		}
		r.Set(col, cells[i])
	}
	return r
}

// RecordFromMap builds a record from loosely typed values (see CellOf).
// Column order is the recognized fields first, then the rest sorted by name.
func RecordFromMap(m map[string]any) Record {
	var r Record
	var extra []string
	for _, name := range RecognizedFields {
		if _, ok := m[name]; ok {
			r.columns = append(r.columns, name)
		}
	}
	for name := range m {
		if !isRecognized(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	r.columns = append(r.columns, extra...)

	for name, v := range m {
		r.Set(name, CellOf(v))
	}
	return r
}

func isRecognized(name string) bool {
	for _, f := range RecognizedFields {
		if f == name {
			return true
		}
	}
	return false
}

// field returns a pointer to the recognized field with the given name.
func (r *Record) field(name string) *Cell {
	switch name {
	case FieldTitle:
		return &r.Title
	case FieldItem:
		return &r.Item
	case FieldPhysicalLocation:
		return &r.PhysicalLocation
	case FieldPendingReason:
		return &r.PendingReason
	case FieldIssueURL:
		return &r.IssueURL
	case FieldQuantity:
		return &r.Quantity
	case FieldStatus:
		return &r.Status
	case FieldAge:
		return &r.Age
	}
	return nil
}

// Get returns the named cell, recognized or not.
func (r Record) Get(name string) Cell {
	if f := r.field(name); f != nil {
		return *f
	}
	return r.Extra[name]
}

// Set stores a cell under the given column name.
func (r *Record) Set(name string, c Cell) {
	if f := r.field(name); f != nil {
		*f = c
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]Cell)
	}
	r.Extra[name] = c
}

// Columns returns the header order of the record.
func (r Record) Columns() []string {
	return r.columns
}

// Fields returns the present (non-absent) cells in header order.
func (r Record) Fields() []NamedCell {
	out := make([]NamedCell, 0, len(r.columns))
	for _, col := range r.columns {
		c := r.Get(col)
		if c.IsAbsent() {
			continue
		}
		out = append(out, NamedCell{Name: col, Cell: c})
	}
	return out
}

// NamedCell pairs a column name with its cell.
type NamedCell struct {
	Name string
	Cell Cell
}

// MarshalJSON encodes the record as an object in header order.
// Absent cells are omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if f.Cell.Kind == CellNumber && !math.IsInf(f.Cell.Num, 0) && !math.IsNaN(f.Cell.Num) {
			val, err = json.Marshal(f.Cell.Num)
		} else {
			val, err = json.Marshal(f.Cell.String())
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping node in header order.
// Absent cells are omitted.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r.Fields() {
		var key, val yaml.Node
		if err := key.Encode(f.Name); err != nil {
			return nil, err
		}
		if err := val.Encode(f.Cell.Value()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}
