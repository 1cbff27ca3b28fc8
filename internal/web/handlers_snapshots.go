package web

import (
	"net/http"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleUpload ingests a multipart file into a new snapshot.
// Form fields: file (required), role (single|start|end, default single).
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 1); err != nil {
		s.fail(w, r, err)
		return
	}

	role, err := core.ParseRole(r.FormValue("role"))
	if err != nil {
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
	snap, err := s.service.Ingest(ctx, upload.FileName, upload.Reader, upload.Size, role)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/snapshots/"+snap.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, snap)
}

// handleListSnapshots returns live snapshots, newest first.
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Snapshots())
}

// handleGetSnapshot returns snapshot metadata and validation warnings.
// ?analysis=true embeds the current analysis.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.service.Snapshot(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := SnapshotResponse{Snapshot: snap}
	if r.URL.Query().Get("analysis") == "true" {
		result := core.Aggregate(snap.Records(), s.service.Thresholds())
		resp.Analysis = &result
	}
	writeJSON(w, resp)
}

// handleDeleteSnapshot discards a snapshot.
func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSnapshot(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalysis returns the bucket metrics of a snapshot.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Analysis(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleCharts returns chart series for a snapshot.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.service.Charts(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, charts)
}

// handleBreakdown returns row counts per issue type.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.service.Breakdown(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, breakdown)
}

// handleRecords runs the data explorer over a snapshot.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.service.Snapshot(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	records := core.Explore(snap.Records(), parseExploreQuery(r))
	writeJSON(w, RecordsResponse{
		Total:   len(records),
		Columns: snap.Columns,
		Records: records,
	})
}

// handleClassify returns every row with its issue type.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	records := snap.Records()
	out := make([]ClassifiedRecord, len(records))
	for i, rec := range records {
		out[i] = ClassifiedRecord{IssueType: core.Classify(rec), Record: rec}
	}
	writeJSON(w, out)
}

// handleBucketRecords returns one dataset for the drill-down dialog.
// Supports q, sort and dir like the explorer.
func (s *Server) handleBucketRecords(w http.ResponseWriter, r *http.Request) {
	def, bucket, err := s.service.BucketRecords(chi.URLParam(r, "id"), chi.URLParam(r, "bucket"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := parseExploreQuery(r)
	records := core.Explore(bucket.Data, core.ExploreQuery{
		Search:     q.Search,
		SortColumn: q.SortColumn,
		SortDir:    q.SortDir,
	})
	writeJSON(w, BucketResponse{
		Info:     def.Info,
		Count:    bucket.Count,
		Quantity: bucket.Quantity,
		Records:  records,
	})
}
