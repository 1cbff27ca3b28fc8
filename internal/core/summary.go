package core

import "sort"

// CategoryCount is the number of records carrying one classifier label.
type CategoryCount struct {
	Category Category `json:"category" yaml:"category"`
	Count    int      `json:"count" yaml:"count"`
}

// Breakdown counts records per Classify label, largest first.
// Ties keep rule order.
func Breakdown(records []Record) []CategoryCount {
	counts := make(map[Category]int, len(Categories))
	for _, r := range records {
		counts[Classify(r)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for _, c := range Categories {
		if n := counts[c]; n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TypeSummary counts each change kind for one category.
type TypeSummary struct {
	IssueType     string `json:"issueType" yaml:"issueType"`
	Added         int    `json:"added" yaml:"added"`
	Removed       int    `json:"removed" yaml:"removed"`
	QtyIncreased  int    `json:"qtyIncreased" yaml:"qtyIncreased"`
	QtyDecreased  int    `json:"qtyDecreased" yaml:"qtyDecreased"`
	StatusChanged int    `json:"statusChanged" yaml:"statusChanged"`
	TypeChanged   int    `json:"typeChanged" yaml:"typeChanged"`
}

// Total is the number of changes counted in the summary.
func (s TypeSummary) Total() int {
	return s.Added + s.Removed + s.QtyIncreased + s.QtyDecreased + s.StatusChanged + s.TypeChanged
}

func (s *TypeSummary) add(t ChangeType) {
	switch t {
	case ChangeAdded:
		s.Added++
	case ChangeRemoved:
		s.Removed++
	case ChangeQtyIncreased:
		s.QtyIncreased++
	case ChangeQtyDecreased:
		s.QtyDecreased++
	case ChangeStatusChanged:
		s.StatusChanged++
	case ChangeTypeChanged:
		s.TypeChanged++
	}
}

// SummarizeChanges groups changes by the end category, or the start
// category for removals. Busiest categories come first; ties keep rule order.
func SummarizeChanges(changes []ChangeRecord) []TypeSummary {
	byType := make(map[string]*TypeSummary)
	var order []string
	for _, c := range changes {
		key := c.EndIssueType
		if key == Absent {
			key = c.StartIssueType
		}
		s, ok := byType[key]
		if !ok {
			s = &TypeSummary{IssueType: key}
			byType[key] = s
			order = append(order, key)
		}
		s.add(c.ChangeType)
	}

	out := make([]TypeSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byType[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Total(), out[j].Total()
		if ti != tj {
			return ti > tj
		}
		return categoryRank(Category(out[i].IssueType)) < categoryRank(Category(out[j].IssueType))
	})
	return out
}

// Transition counts records that moved from one category to another.
type Transition struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Count int    `json:"count" yaml:"count"`
}

// Label renders the transition as "From -> To".
func (t Transition) Label() string {
	return t.From + " -> " + t.To
}

// Transitions counts type_changed records per category pair,
// most frequent first and then by label.
func Transitions(changes []ChangeRecord) []Transition {
	counts := make(map[Transition]int)
	for _, c := range changes {
		if c.ChangeType != ChangeTypeChanged {
			continue
		}
		counts[Transition{From: c.StartIssueType, To: c.EndIssueType}]++
	}

	out := make([]Transition, 0, len(counts))
	for t, n := range counts {
		t.Count = n
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label() < out[j].Label()
	})
	return out
}
