package core

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDir is a sort direction for SortRecords.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir maps "desc" (any case) to SortDesc and anything else to SortAsc.
func ParseSortDir(s string) SortDir {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// ExploreQuery filters a record collection for the data explorer.
// Zero-valued fields do not filter. All filters must match.
type ExploreQuery struct {
	// Search matches when any present field contains the term.
	Search string `json:"search,omitempty"`
	// Columns maps a column name to a contains filter on that column.
	Columns       map[string]string `json:"columns,omitempty"`
	AgeMin        *float64          `json:"ageMin,omitempty"`
	AgeMax        *float64          `json:"ageMax,omitempty"`
	Status        string            `json:"status,omitempty"`
	PendingReason string            `json:"pendingReason,omitempty"`
	Category      Category          `json:"category,omitempty"`

	SortColumn string  `json:"sortColumn,omitempty"`
	SortDir    SortDir `json:"sortDir,omitempty"`
}

// Explore returns the records matching q, sorted when q names a column.
// The input slice is not modified.
func Explore(records []Record, q ExploreQuery) []Record {
	search := strings.ToLower(q.Search)
	status := strings.ToLower(q.Status)
	reason := strings.ToLower(q.PendingReason)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if search != "" && !anyFieldContains(r, search) {
			continue
		}
		if !columnsMatch(r, q.Columns) {
			continue
		}
		if q.AgeMin != nil || q.AgeMax != nil {
			age, ok := r.Age.Number()
			if !ok {
				continue
			}
			if q.AgeMin != nil && age < *q.AgeMin {
				continue
			}
			if q.AgeMax != nil && age > *q.AgeMax {
				continue
			}
		}
		if status != "" && !strings.Contains(lower(r.Status), status) {
			continue
		}
		if reason != "" && !strings.Contains(lower(r.PendingReason), reason) {
			continue
		}
		if q.Category != "" && Classify(r) != q.Category {
			continue
		}
		out = append(out, r)
	}

	if q.SortColumn != "" {
		SortRecords(out, q.SortColumn, q.SortDir)
	}
	return out
}

// Search keeps the records where any present field contains term,
// ignoring case.
func Search(records []Record, term string) []Record {
	return Explore(records, ExploreQuery{Search: term})
}

func anyFieldContains(r Record, term string) bool {
	for _, f := range r.Fields() {
		if strings.Contains(strings.ToLower(f.Cell.String()), term) {
			return true
		}
	}
	return false
}

func columnsMatch(r Record, filters map[string]string) bool {
	for col, val := range filters {
		if val == "" {
			continue
		}
		if !strings.Contains(lower(r.Get(col)), strings.ToLower(val)) {
			return false
		}
	}
	return true
}

// SortRecords sorts records in place by one column. Absent values sort
// first ascending and last descending. Two numeric values compare as
// numbers; anything else compares as collated text. The sort is stable.
func SortRecords(records []Record, column string, dir SortDir) {
	coll := collate.New(language.English)
	desc := dir == SortDesc

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Get(column), records[j].Get(column)
		cmp := compareCells(coll, a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareCells orders absent cells before everything else.
func compareCells(coll *collate.Collator, a, b Cell) int {
	switch {
	case a.IsAbsent() && b.IsAbsent():
		return 0
	case a.IsAbsent():
		return -1
	case b.IsAbsent():
		return 1
	}

	an, aok := a.Number()
	bn, bok := b.Number()
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return coll.CompareString(a.String(), b.String())
}
