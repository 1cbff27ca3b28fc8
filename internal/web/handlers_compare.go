package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/JonMunkholm/ISS/internal/web/templates"
)

// CompareRequest names the two snapshots to reconcile.
type CompareRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// handleCompare reconciles two stored snapshots.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Start == "" || req.End == "" {
		writeError(w, http.StatusBadRequest, "start and end snapshot IDs are required")
		return
	}

	cmp, err := s.service.Compare(r.Context(), req.Start, req.End)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, cmp)
}

// handleCompareUpload ingests a start and an end file in one request and
// reconciles them. Form fields: start, end.
func (s *Server) handleCompareUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 2); err != nil {
		s.fail(w, r, err)
		return
	}

	start, startFile, err := formUpload(r, "start")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer startFile.Close()

	end, endFile, err := formUpload(r, "end")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer endFile.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	cmp, err := s.service.CompareUploads(ctx, start, end)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, cmp)
}

// handleCompareExport downloads the changes between two snapshots.
// Query: start, end, format (xlsx or csv, default xlsx).
func (s *Server) handleCompareExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format := strings.ToLower(query.Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	cmp, err := s.service.Compare(r.Context(), query.Get("start"), query.Get("end"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	name := export.DatedFileName("ISS_Shift_Changes", format, time.Now())
	if format == "csv" {
		err = export.ChangesCSV(&buf, cmp.Changes)
	} else {
		err = export.ChangesXLSX(&buf, cmp.Changes)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	contentType := xlsxContentType
	if format == "csv" {
		contentType = csvContentType
	}
	sendFile(w, contentType, name, &buf)
}

// handleComparePage renders the reconciliation page for ?start=&end=.
func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cmp, err := s.service.Compare(r.Context(), query.Get("start"), query.Get("end"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	render(w, r, templates.Comparison(cmp))
}
