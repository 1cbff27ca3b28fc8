package web

import (
	"net/http"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/JonMunkholm/ISS/internal/logging"
	"github.com/JonMunkholm/ISS/internal/web/templates"
	"github.com/a-h/templ"
)

// render writes an HTML component. Errors after the first byte can only
// be logged.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}

// handleDashboard renders the main dashboard page. ?snapshot=ID selects
// the file whose metrics are shown.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params := templates.DashboardParams{
		Snapshots:  s.service.Snapshots(),
		Thresholds: s.service.Thresholds(),
	}

	if id := r.URL.Query().Get("snapshot"); id != "" {
		snap, err := s.service.Snapshot(id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		records := snap.Records()
		result := core.Aggregate(records, params.Thresholds)

		params.Selected = snap
		params.Summary = export.SummaryRows(result)
		params.Breakdown = core.Breakdown(records)
		for _, def := range core.All() {
			b := def.Select(result)
			params.Cards = append(params.Cards, templates.BucketCard{
				Info:     def.Info,
				Count:    b.Count,
				Quantity: b.Quantity,
			})
		}
	}

	render(w, r, templates.Dashboard(params))
}

// handleUploadForm ingests a file posted from the dashboard form and
// redirects to its dashboard view.
func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 1); err != nil {
		s.fail(w, r, err)
		return
	}

	upload, file, err := formUpload(r, "file")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer file.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	snap, err := s.service.Ingest(ctx, upload.FileName, upload.Reader, upload.Size, core.RoleSingle)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/?snapshot="+snap.ID, http.StatusSeeOther)
}
