package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func exploreRecords() []Record {
	return []Record{
		rec(map[string]any{"IssueUrl": "a", "Item": "Widget", "Status": "Open", "Age": 3, "Notes": "fragile"}),
		rec(map[string]any{"IssueUrl": "b", "Item": "FBA Missing From Inbound", "Status": "Work in Progress", "Age": 12}),
		rec(map[string]any{"IssueUrl": "c", "Item": "éclair", "Status": "Resolved", "PendingReason": "FC Receive", "Age": "old"}),
		rec(map[string]any{"IssueUrl": "d", "Item": "apple", "Status": "open"}),
	}
}

func TestExplore_Filters(t *testing.T) {
	tests := []struct {
		name string
		q    ExploreQuery
		want []string
	}{
		{"no filters", ExploreQuery{}, []string{"a", "b", "c", "d"}},
		{"search any field", ExploreQuery{Search: "FRAGILE"}, []string{"a"}},
		{"search matches numbers", ExploreQuery{Search: "12"}, []string{"b"}},
		{"status contains", ExploreQuery{Status: "open"}, []string{"a", "d"}},
		{"pending reason", ExploreQuery{PendingReason: "receive"}, []string{"c"}},
		{"age range", ExploreQuery{AgeMin: ptr(3), AgeMax: ptr(10)}, []string{"a"}},
		{"age min drops non-numeric", ExploreQuery{AgeMin: ptr(0)}, []string{"a", "b"}},
		{"category", ExploreQuery{Category: CategoryMFI}, []string{"b"}},
		{"column filter", ExploreQuery{Columns: map[string]string{"Item": "WID"}}, []string{"a"}},
		{"blank column filter ignored", ExploreQuery{Columns: map[string]string{"Item": ""}}, []string{"a", "b", "c", "d"}},
		{"combined", ExploreQuery{Status: "open", Search: "apple"}, []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urls(Explore(exploreRecords(), tt.q)))
		})
	}
}

func TestExplore_DoesNotModifyInput(t *testing.T) {
	records := exploreRecords()
	Explore(records, ExploreQuery{SortColumn: "Item", SortDir: SortDesc})
	assert.Equal(t, []string{"a", "b", "c", "d"}, urls(records))
}

func TestSortRecords(t *testing.T) {
	tests := []struct {
		name   string
		column string
		dir    SortDir
		want   []string
	}{
		{"numeric asc with absent first", "Age", SortAsc, []string{"d", "a", "b", "c"}},
		{"numeric desc with absent last", "Age", SortDesc, []string{"c", "b", "a", "d"}},
		{"collated text", "Item", SortAsc, []string{"d", "c", "b", "a"}},
		{"unknown column keeps order", "Nope", SortAsc, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := exploreRecords()
			SortRecords(records, tt.column, tt.dir)
			assert.Equal(t, tt.want, urls(records))
		})
	}
}

func TestParseSortDir(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortDir(" DESC "))
	assert.Equal(t, SortAsc, ParseSortDir("asc"))
	assert.Equal(t, SortAsc, ParseSortDir("sideways"))
}

func TestSearch(t *testing.T) {
	assert.Equal(t, []string{"c"}, urls(Search(exploreRecords(), "éclair")))
	assert.Empty(t, Search(nil, "x"))
}
