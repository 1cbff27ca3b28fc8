package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// urls returns the IssueUrl text of each record, in order.
func urls(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.IssueURL.Text())
	}
	return out
}

func sampleRecords() []Record {
	return []Record{
		rec(map[string]any{"IssueUrl": "cret-1", "Title": "CRET box", "PendingReason": "FC Receive", "Quantity": 4}),
		rec(map[string]any{"IssueUrl": "fcr-1", "PendingReason": "FC Receive", "Quantity": 2, "Age": 11}),
		rec(map[string]any{"IssueUrl": "fcr-2", "PendingReason": "fc receive", "Quantity": "3", "Age": 10}),
		rec(map[string]any{"IssueUrl": "fca-1", "PendingReason": "Requester Information / FC Actionable", "Quantity": 1, "Age": "n/a"}),
		rec(map[string]any{"IssueUrl": "mfi-1", "Item": "FBA Missing From Inbound", "Status": " Work In Progress ", "Quantity": 5, "Age": 6}),
		rec(map[string]any{"IssueUrl": "mfi-2", "Item": "FBA Missing From Inbound", "Title": "Andon cord", "Status": "Open", "Age": 5}),
		rec(map[string]any{"IssueUrl": "bcr-1", "Title": "Bin check request on A-1", "Quantity": 1}),
		rec(map[string]any{"IssueUrl": "rbs-1", "Item": "Image Update", "Quantity": 7}),
		rec(map[string]any{"IssueUrl": "rbs-fc", "Item": "No PO Found", "PendingReason": "FC Receive - pending"}),
		rec(map[string]any{"IssueUrl": "oth-1", "Item": "Widget", "Quantity": "abc"}),
		rec(map[string]any{"IssueUrl": "  ", "Item": "Gadget", "Quantity": 2}),
	}
}

func TestAggregate_Buckets(t *testing.T) {
	a := Aggregate(sampleRecords(), DefaultThresholds())

	assert.Equal(t, []string{"cret-1"}, urls(a.CRET.Data))
	assert.Equal(t, []string{"fcr-1", "fcr-2", "rbs-fc"}, urls(a.FCReceive.Data))
	assert.Equal(t, []string{"fca-1"}, urls(a.FCActionable.Data))
	assert.Equal(t, []string{"mfi-1", "mfi-2"}, urls(a.MFI.Data))
	assert.Equal(t, []string{"mfi-2"}, urls(a.BinCheck.AndonCord.Data))
	assert.Equal(t, []string{"bcr-1"}, urls(a.BinCheck.BinCheckRequest.Data))
	assert.Equal(t, []string{"mfi-2", "bcr-1"}, urls(a.BinCheck.Data))
	assert.Equal(t, []string{"rbs-1"}, urls(a.RBSPSAS.Data))
	assert.Equal(t, []string{"oth-1", "  "}, urls(a.Others.Data))
}

func TestAggregate_CountsAndQuantities(t *testing.T) {
	a := Aggregate(sampleRecords(), DefaultThresholds())

	// The blank IssueUrl row is summed but not counted.
	assert.Equal(t, 9, a.TotalIssues)
	assert.Equal(t, 21.0, a.TotalQuantity)
	assert.Equal(t, 1, a.Others.Count)
	assert.Equal(t, 2.0, a.Others.Quantity)

	assert.Equal(t, 3, a.FCReceive.Count)
	assert.Equal(t, 5.0, a.FCReceive.Quantity)
	assert.Equal(t, 2, a.BinCheck.Count)
	assert.Equal(t, 1.0, a.BinCheck.Quantity)
	assert.Equal(t, 4.0, a.CRET.Quantity)
}

func TestAggregate_AgeThresholds(t *testing.T) {
	a := Aggregate(sampleRecords(), DefaultThresholds())

	// Strictly greater than; 10 is not over 10.
	assert.Equal(t, 1, a.FCReceive.AgeOverThreshold)
	// Non-numeric Age never counts.
	assert.Equal(t, 0, a.FCActionable.AgeOverThreshold)
	assert.Equal(t, 1, a.MFI.AgeOverThreshold)
	assert.Equal(t, 1, a.MFI.WorkInProgress)

	a = Aggregate(sampleRecords(), ThresholdsConfig{})
	assert.Equal(t, 2, a.FCReceive.AgeOverThreshold)
	assert.Equal(t, 2, a.MFI.AgeOverThreshold)
}

func TestAggregate_CRETIsExclusive(t *testing.T) {
	a := Aggregate(sampleRecords(), DefaultThresholds())

	others := [][]Record{
		a.FCReceive.Data, a.FCActionable.Data, a.MFI.Data,
		a.RBSPSAS.Data, a.BinCheck.Data, a.Others.Data,
	}
	for _, data := range others {
		for _, r := range data {
			assert.False(t, IsCRET(r), r.IssueURL.Text())
		}
	}
}

func TestAggregate_OthersIsComplement(t *testing.T) {
	records := sampleRecords()
	a := Aggregate(records, DefaultThresholds())

	inBucket := make(map[string]bool)
	for _, data := range [][]Record{
		a.FCReceive.Data, a.FCActionable.Data, a.MFI.Data,
		a.RBSPSAS.Data, a.BinCheck.AndonCord.Data, a.BinCheck.BinCheckRequest.Data,
	} {
		for _, r := range data {
			inBucket[BuildKey(r)] = true
		}
	}

	var want []string
	for _, r := range records {
		if !IsCRET(r) && !inBucket[BuildKey(r)] {
			want = append(want, r.IssueURL.Text())
		}
	}
	assert.Equal(t, want, urls(a.Others.Data))
}

func TestAggregate_RBSExcludesFCPending(t *testing.T) {
	r := rec(map[string]any{"IssueUrl": "x", "Item": "No PO Found", "PendingReason": "FC Receive - pending"})
	a := Aggregate([]Record{r}, DefaultThresholds())

	assert.Empty(t, a.RBSPSAS.Data)
	assert.Equal(t, 1, a.FCReceive.Count)
	assert.Equal(t, CategoryFCReceive, Classify(r))
}

func TestAggregate_Empty(t *testing.T) {
	a := Aggregate(nil, DefaultThresholds())

	want := AnalysisResult{
		CRET:         Bucket{Data: []Record{}},
		FCReceive:    AgedBucket{Bucket: Bucket{Data: []Record{}}},
		FCActionable: AgedBucket{Bucket: Bucket{Data: []Record{}}},
		MFI:          MFIBucket{AgedBucket: AgedBucket{Bucket: Bucket{Data: []Record{}}}},
		RBSPSAS:      Bucket{Data: []Record{}},
		Others:       Bucket{Data: []Record{}},
		BinCheck: BinCheckBucket{
			Bucket:          Bucket{Data: []Record{}},
			AndonCord:       Bucket{Data: []Record{}},
			BinCheckRequest: Bucket{Data: []Record{}},
		},
	}
	if diff := cmp.Diff(want, a, cmpopts.IgnoreUnexported(Record{})); diff != "" {
		t.Errorf("Aggregate(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_TotalsIgnoreOverlap(t *testing.T) {
	// One row sits in MFI and Andon Cord at once; totals count it once.
	r := rec(map[string]any{"IssueUrl": "u", "Item": "FBA Missing From Inbound", "Title": "andon cord", "Quantity": 3})
	a := Aggregate([]Record{r}, DefaultThresholds())

	require.Equal(t, 1, a.MFI.Count)
	require.Equal(t, 1, a.BinCheck.AndonCord.Count)
	assert.Equal(t, 1, a.TotalIssues)
	assert.Equal(t, 3.0, a.TotalQuantity)
}

func TestHasIssueURL(t *testing.T) {
	assert.True(t, HasIssueURL(rec(map[string]any{"IssueUrl": " x "})))
	assert.False(t, HasIssueURL(rec(map[string]any{"IssueUrl": "   "})))
	assert.False(t, HasIssueURL(Record{}))
}
