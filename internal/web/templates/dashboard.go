package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/a-h/templ"
)

// BucketCard is one dataset tile on the dashboard.
type BucketCard struct {
	Info     core.BucketInfo
	Count    int
	Quantity float64
}

// DashboardParams is everything the dashboard page shows.
type DashboardParams struct {
	Snapshots  []*core.Snapshot
	Selected   *core.Snapshot
	Summary    []export.SummaryRow
	Cards      []BucketCard
	Breakdown  []core.CategoryCount
	Thresholds core.ThresholdsConfig
}

// Dashboard renders the main page.
func Dashboard(params DashboardParams) templ.Component {
	return Layout("ISS Dashboard", dashboardBody(params))
}

func dashboardBody(params DashboardParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<h1>ISS Dashboard</h1>`)

		p.raw(`<form method="post" action="/upload" enctype="multipart/form-data">`)
		p.raw(`<label>Issue export (.csv, .xlsx) <input type="file" name="file" accept=".csv,.xlsx,.xlsm" required></label> `)
		p.raw(`<button type="submit">Upload</button></form>`)

		p.raw(`<p class="muted">Age thresholds: FC Receive `)
		p.text(strconv.Itoa(params.Thresholds.FCReceiveAgeThreshold))
		p.raw(`, FC Actionable `)
		p.text(strconv.Itoa(params.Thresholds.FCActionableAgeThreshold))
		p.raw(`, MFI `)
		p.text(strconv.Itoa(params.Thresholds.MFIAgeThreshold))
		p.raw(`</p>`)

		if params.Selected != nil {
			writeSelected(p, params)
		}

		writeSnapshotList(p, params.Snapshots)
		if len(params.Snapshots) >= 2 {
			writeCompareForm(p, params.Snapshots)
		}
		return p.err
	})
}

func writeSelected(p *page, params DashboardParams) {
	snap := params.Selected
	base := "/api/snapshots/" + url.PathEscape(snap.ID)

	p.raw(`<h2>`)
	p.text(snap.FileName)
	p.raw(`</h2><p class="muted">`)
	p.textf("%d rows, uploaded %s", snap.RowCount, snap.UploadedAt.Format(time.DateTime))
	p.raw(` &middot; <a href="`)
	p.text(base + "/export")
	p.raw(`">Export all</a> &middot; <a href="`)
	p.text(base + "/export/summary")
	p.raw(`">Export summary</a></p>`)

	for _, warn := range snap.Warnings {
		p.raw(`<p class="muted">&#9888; `)
		p.text(warn.String())
		p.raw(`</p>`)
	}

	p.raw(`<div class="cards">`)
	for _, c := range params.Cards {
		p.raw(`<div class="card"><div class="muted">`)
		p.text(c.Info.Group)
		p.raw(`</div><div>`)
		p.text(c.Info.Label)
		p.raw(`</div><div class="count">`)
		p.text(strconv.Itoa(c.Count))
		p.raw(`</div><div class="muted">Qty `)
		p.text(strconv.FormatFloat(c.Quantity, 'f', -1, 64))
		p.raw(` &middot; <a href="`)
		p.text(base + "/export/" + url.PathEscape(c.Info.Key))
		p.raw(`">xlsx</a></div></div>`)
	}
	p.raw(`</div>`)

	p.raw(`<h2>Summary</h2><table><thead><tr><th>Category</th><th>Issues</th><th>Quantity</th><th>Age over threshold</th></tr></thead><tbody>`)
	for _, row := range params.Summary {
		p.raw(`<tr><td>`)
		p.text(row.Category)
		p.raw(`</td><td>`)
		p.text(strconv.Itoa(row.Issues))
		p.raw(`</td><td>`)
		p.text(strconv.FormatFloat(row.Quantity, 'f', -1, 64))
		p.raw(`</td><td>`)
		if row.AgeOverThreshold != nil {
			p.text(strconv.Itoa(*row.AgeOverThreshold))
		}
		p.raw(`</td></tr>`)
	}
	p.raw(`</tbody></table>`)

	if len(params.Breakdown) > 0 {
		p.raw(`<h2>Issue types</h2><table><thead><tr><th>Type</th><th>Rows</th></tr></thead><tbody>`)
		for _, b := range params.Breakdown {
			p.raw(`<tr><td>`)
			p.text(string(b.Category))
			p.raw(`</td><td>`)
			p.text(strconv.Itoa(b.Count))
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	}
}

func writeSnapshotList(p *page, snaps []*core.Snapshot) {
	p.raw(`<h2>Uploaded files</h2>`)
	if len(snaps) == 0 {
		p.raw(`<p class="muted">No files uploaded yet.</p>`)
		return
	}
	p.raw(`<table><thead><tr><th>File</th><th>Rows</th><th>Uploaded</th><th>Expires</th></tr></thead><tbody>`)
	for _, s := range snaps {
		p.raw(`<tr><td><a href="/?snapshot=`)
		p.text(url.QueryEscape(s.ID))
		p.raw(`">`)
		p.text(s.FileName)
		p.raw(`</a></td><td>`)
		p.text(strconv.Itoa(s.RowCount))
		p.raw(`</td><td>`)
		p.text(s.UploadedAt.Format(time.DateTime))
		p.raw(`</td><td>`)
		p.text(s.ExpiresAt.Format(time.DateTime))
		p.raw(`</td></tr>`)
	}
	p.raw(`</tbody></table>`)
}

func writeCompareForm(p *page, snaps []*core.Snapshot) {
	p.raw(`<h2>Shift reconciliation</h2><form method="get" action="/compare">`)
	for _, side := range []string{"start", "end"} {
		p.raw(`<label>`)
		p.text(side)
		p.raw(` <select name="`)
		p.text(side)
		p.raw(`">`)
		for _, s := range snaps {
			p.raw(`<option value="`)
			p.text(s.ID)
			p.raw(`">`)
			p.text(s.FileName)
			p.raw(`</option>`)
		}
		p.raw(`</select></label> `)
	}
	p.raw(`<button type="submit">Compare</button></form>`)
}
