package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/a-h/templ"
)

// Comparison renders a reconciliation of two snapshots.
func Comparison(cmp *core.Comparison) templ.Component {
	return Layout("Shift Reconciliation", comparisonBody(cmp))
}

func comparisonBody(cmp *core.Comparison) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<h1>Shift Reconciliation</h1><p class="muted"><a href="/">Dashboard</a>`)
		if cmp.Start != nil && cmp.End != nil {
			q := url.Values{"start": {cmp.Start.ID}, "end": {cmp.End.ID}}
			p.raw(` &middot; `)
			p.text(cmp.Start.FileName)
			p.raw(` &rarr; `)
			p.text(cmp.End.FileName)
			p.raw(` &middot; <a href="/api/compare/export?`)
			p.text(q.Encode() + "&format=xlsx")
			p.raw(`">xlsx</a> <a href="/api/compare/export?`)
			p.text(q.Encode() + "&format=csv")
			p.raw(`">csv</a>`)
		}
		p.raw(`</p>`)

		p.raw(`<h2>By issue type</h2><table><thead><tr><th>Type</th>`)
		for _, t := range core.ChangeTypes {
			p.raw(`<th>`)
			p.text(string(t))
			p.raw(`</th>`)
		}
		p.raw(`<th>Total</th></tr></thead><tbody>`)
		for _, s := range cmp.Summary {
			p.raw(`<tr><td>`)
			p.text(s.IssueType)
			p.raw(`</td>`)
			for _, n := range []int{s.Added, s.Removed, s.QtyIncreased, s.QtyDecreased, s.StatusChanged, s.TypeChanged, s.Total()} {
				p.raw(`<td>`)
				p.text(strconv.Itoa(n))
				p.raw(`</td>`)
			}
			p.raw(`</tr>`)
		}
		p.raw(`</tbody></table>`)

		if len(cmp.Transitions) > 0 {
			p.raw(`<h2>Type transitions</h2><table><tbody>`)
			for _, t := range cmp.Transitions {
				p.raw(`<tr><td>`)
				p.text(t.Label())
				p.raw(`</td><td>`)
				p.text(strconv.Itoa(t.Count))
				p.raw(`</td></tr>`)
			}
			p.raw(`</tbody></table>`)
		}

		p.raw(`<h2>Changes</h2>`)
		if len(cmp.Changes) == 0 {
			p.raw(`<p class="muted">No changes between the two files.</p>`)
			return p.err
		}
		p.raw(`<table><thead><tr><th>Change</th><th>Item</th><th>Title</th><th>Type</th><th>Qty</th><th>Status</th></tr></thead><tbody>`)
		for _, c := range cmp.Changes {
			p.raw(`<tr><td>`)
			p.text(string(c.ChangeType))
			p.raw(`</td><td>`)
			p.text(c.Item)
			p.raw(`</td><td>`)
			p.text(c.Title)
			p.raw(`</td><td>`)
			p.text(c.StartIssueType + " → " + c.EndIssueType)
			p.raw(`</td><td>`)
			p.textf("%g → %g (%+g)", c.StartQty, c.EndQty, c.QtyDelta)
			p.raw(`</td><td>`)
			p.text(c.StartStatus + " → " + c.EndStatus)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}
