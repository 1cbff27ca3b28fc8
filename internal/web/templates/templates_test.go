package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestErrorAlert_EscapesMessage(t *testing.T) {
	out := render(t, ErrorAlert("<script>x</script>", "Try again", "FILE002"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Try again")
	assert.Contains(t, out, "FILE002")
}

func TestErrorAlert_OmitsEmptyAction(t *testing.T) {
	out := render(t, ErrorAlert("boom", "", ""))
	assert.NotContains(t, out, "alert-action")
	assert.NotContains(t, out, "alert-code")
}

func TestDashboard_Empty(t *testing.T) {
	out := render(t, Dashboard(DashboardParams{Thresholds: core.DefaultThresholds()}))
	assert.Contains(t, out, "<title>ISS Dashboard</title>")
	assert.Contains(t, out, "No files uploaded yet.")
	assert.NotContains(t, out, `action="/compare"`)
}

func TestDashboard_Selected(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	snap := &core.Snapshot{ID: "abc", FileName: "shift<1>.csv", RowCount: 3, UploadedAt: now, ExpiresAt: now.Add(time.Hour)}
	other := &core.Snapshot{ID: "def", FileName: "shift2.csv", UploadedAt: now, ExpiresAt: now.Add(time.Hour)}

	out := render(t, Dashboard(DashboardParams{
		Snapshots: []*core.Snapshot{snap, other},
		Selected:  snap,
		Summary:   export.SummaryRows(core.AnalysisResult{}),
		Cards: []BucketCard{
			{Info: core.BucketInfo{Key: "cret", Group: "Returns", Label: "CRET"}, Count: 2, Quantity: 1.5},
		},
		Breakdown:  []core.CategoryCount{{Category: core.CategoryOthers, Count: 3}},
		Thresholds: core.DefaultThresholds(),
	}))

	assert.Contains(t, out, "shift&lt;1&gt;.csv")
	assert.Contains(t, out, "/api/snapshots/abc/export/cret")
	assert.Contains(t, out, "/api/snapshots/abc/export/summary")
	assert.Contains(t, out, "FC Actionable")
	assert.Contains(t, out, `action="/compare"`)
}

func TestComparison(t *testing.T) {
	changes := []core.ChangeRecord{{
		Key: "k", Item: "widget", ChangeType: core.ChangeTypeChanged,
		StartIssueType: "Others", EndIssueType: "CRET", IssueType: "CRET",
		StartStatus: "Open", EndStatus: "Open",
	}}
	cmp := core.NewComparison(nil, nil)
	cmp.Changes = changes
	cmp.Summary = core.SummarizeChanges(changes)
	cmp.Transitions = core.Transitions(changes)
	cmp.Start = &core.Snapshot{ID: "s", FileName: "start.csv"}
	cmp.End = &core.Snapshot{ID: "e", FileName: "end.csv"}

	out := render(t, Comparison(cmp))
	assert.Contains(t, out, "Others -&gt; CRET")
	assert.Contains(t, out, "type_changed")
	assert.Contains(t, out, "format=csv")
}

func TestComparison_NoChanges(t *testing.T) {
	out := render(t, Comparison(core.NewComparison(nil, nil)))
	assert.Contains(t, out, "No changes between the two files.")
}
