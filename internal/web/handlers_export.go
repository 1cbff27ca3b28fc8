package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/go-chi/chi/v5"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

// handleExportAll downloads every row of a snapshot with its issue type.
func (s *Server) handleExportAll(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.RecordsXLSX(&buf, "ISS Data", snap.Columns, snap.Records(), export.WithIssueType()); err != nil {
		s.fail(w, r, err)
		return
	}
	sendFile(w, xlsxContentType, export.DatedFileName(export.DefaultPrefix, "xlsx", time.Now()), &buf)
}

// handleExportBucket downloads one dataset of a snapshot.
func (s *Server) handleExportBucket(w http.ResponseWriter, r *http.Request) {
	def, bucket, err := s.service.BucketRecords(chi.URLParam(r, "id"), chi.URLParam(r, "bucket"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.RecordsXLSX(&buf, def.Info.Label, nil, bucket.Data); err != nil {
		s.fail(w, r, err)
		return
	}
	sendFile(w, xlsxContentType, export.DatasetFileName(def.Info.Label), &buf)
}

// handleExportSummary downloads the dashboard summary table.
func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Analysis(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.SummaryXLSX(&buf, result); err != nil {
		s.fail(w, r, err)
		return
	}
	sendFile(w, xlsxContentType, export.DatedFileName("ISS_Summary", "xlsx", time.Now()), &buf)
}
