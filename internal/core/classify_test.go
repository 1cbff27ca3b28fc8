package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rec builds a record from column values; see RecordFromMap.
func rec(fields map[string]any) Record {
	return RecordFromMap(fields)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Category
	}{
		{"cret title", map[string]any{"Title": "Possible CRET damage"}, CategoryCRET},
		{"c-return item", map[string]any{"Item": "C-Return unit"}, CategoryCRET},
		{"customer return item", map[string]any{"Item": "customer RETURN"}, CategoryCRET},
		{"tscret location", map[string]any{"PhysicalLocation": "P-1-TSCRET-04"}, CategoryCRET},
		{"fc receive", map[string]any{"PendingReason": "Waiting on FC Receive"}, CategoryFCReceive},
		{"fc actionable", map[string]any{"PendingReason": "Requester Information - FC Actionable"}, CategoryFCActionable},
		{"fc actionable needs both parts", map[string]any{"PendingReason": "FC Actionable"}, CategoryOthers},
		{"mfi", map[string]any{"Item": "FBA Missing From Inbound"}, CategoryMFI},
		{"andon cord", map[string]any{"Title": "Andon Cord pulled at 3"}, CategoryBinCheck},
		{"bin check request", map[string]any{"Title": "Bin Check Request On P-1-A"}, CategoryBinCheck},
		{"rbs catalog", map[string]any{"Item": "Barcode not linked"}, CategoryRBSPSAS},
		{"rbs catalog substring", map[string]any{"Item": "XX no po found - no problem slip YY"}, CategoryRBSPSAS},
		{"nothing matches", map[string]any{"Item": "Widget", "Title": "Loose"}, CategoryOthers},
		{"empty record", map[string]any{}, CategoryOthers},

		// Priority: the first matching rule wins.
		{"cret beats fc receive", map[string]any{"Title": "cret", "PendingReason": "fc receive"}, CategoryCRET},
		{"fc receive beats mfi", map[string]any{"Item": "FBA Missing From Inbound", "PendingReason": "FC Receive"}, CategoryFCReceive},
		{"mfi beats bin check", map[string]any{"Item": "FBA missing from inbound", "Title": "andon cord"}, CategoryMFI},
		{"bin check beats rbs", map[string]any{"Item": "Image Update", "Title": "andon cord"}, CategoryBinCheck},
		{"fc receive beats rbs", map[string]any{"Item": "Image Update", "PendingReason": "FC Receive"}, CategoryFCReceive},

		// Numeric cells are read through their text view.
		{"numeric title", map[string]any{"Title": 42}, CategoryOthers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(rec(tt.in)))
		})
	}
}

func TestClassify_SingleLabel(t *testing.T) {
	// Every record gets exactly one label, even when several rules match.
	r := rec(map[string]any{
		"Title":         "andon cord cret",
		"Item":          "FBA Missing From Inbound Image Update",
		"PendingReason": "FC Receive requester information fc actionable",
	})
	assert.Equal(t, CategoryCRET, Classify(r))
}

func TestRules_OrderMatchesCategories(t *testing.T) {
	rules := Rules()
	assert.Len(t, rules, len(Categories))
	for i, rule := range rules {
		assert.Equal(t, Categories[i], rule.Category)
		assert.NotEmpty(t, rule.Description)
	}
	assert.True(t, rules[len(rules)-1].Match(Record{}))
}

func TestRBSCatalog(t *testing.T) {
	assert.Len(t, RBSCatalog, 15)
	for _, entry := range RBSCatalog {
		assert.True(t, IsRBS(rec(map[string]any{"Item": entry})), entry)
	}
}

func TestIsRBSPending(t *testing.T) {
	assert.True(t, IsRBSPending(rec(map[string]any{"Item": "Title Update"})))
	assert.False(t, IsRBSPending(rec(map[string]any{"Item": "Title Update", "PendingReason": "FC Receive"})))
	assert.False(t, IsRBSPending(rec(map[string]any{
		"Item":          "Title Update",
		"PendingReason": "requester information, fc actionable",
	})))
}

func TestIsBinCheck(t *testing.T) {
	assert.True(t, IsAndonCord(rec(map[string]any{"Title": "ANDON CORD"})))
	assert.False(t, IsBinCheckRequest(rec(map[string]any{"Title": "bin check"})))
	assert.True(t, IsBinCheck(rec(map[string]any{"Title": "bin check request on A"})))
}
