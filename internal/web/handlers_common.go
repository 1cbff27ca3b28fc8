// Package web provides HTTP handlers for the ISS dashboard.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/ingest"
)

// multipartMemory is how much of a multipart form is buffered in memory
// before parts spill to temporary files.
const multipartMemory = 32 << 20

// parseFloatParam parses an optional numeric query parameter.
// Blank or malformed values yield nil.
func parseFloatParam(r *http.Request, name string) *float64 {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseExploreQuery reads explorer filters from the URL.
//
// Supported parameters: q, status, pendingReason, category, ageMin, ageMax,
// sort, dir and filter[Column]=value for per-column filters.
func parseExploreQuery(r *http.Request) core.ExploreQuery {
	query := r.URL.Query()
	q := core.ExploreQuery{
		Search:        query.Get("q"),
		Status:        query.Get("status"),
		PendingReason: query.Get("pendingReason"),
		Category:      core.Category(query.Get("category")),
		AgeMin:        parseFloatParam(r, "ageMin"),
		AgeMax:        parseFloatParam(r, "ageMax"),
		SortColumn:    query.Get("sort"),
		SortDir:       core.ParseSortDir(query.Get("dir")),
	}

	for key, values := range query {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		col := key[len("filter[") : len(key)-1]
		if col == "" || values[0] == "" {
			continue
		}
		if q.Columns == nil {
			q.Columns = make(map[string]string)
		}
		q.Columns[col] = values[0]
	}
	return q
}

// parseUploadForm limits the body and parses the multipart form.
func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request, files int) error {
	// Room for every file part plus form overhead.
	limit := s.service.MaxFileSize()*int64(files) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("parse upload form: %w", err)
	}
	return nil
}

// formUpload returns the named file part as a core.Upload. The caller must
// close the returned file.
func formUpload(r *http.Request, field string) (core.Upload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return core.Upload{}, nil, fmt.Errorf("%s: %w", field, errNoFile)
	}
	if !ingest.Supported(header.Filename) {
		file.Close()
		return core.Upload{}, nil, fmt.Errorf("%s: %w", header.Filename, ingest.ErrUnsupportedFormat)
	}
	return core.Upload{
		FileName: header.Filename,
		Reader:   file,
		Size:     header.Size,
	}, file, nil
}

// sendFile writes a rendered download with attachment headers.
func sendFile(w http.ResponseWriter, contentType, fileName string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.WriteHeader(http.StatusOK)
	body.WriteTo(w)
}

// ClassifiedRecord is a record paired with its issue type.
type ClassifiedRecord struct {
	IssueType core.Category `json:"issueType"`
	Record    core.Record   `json:"record"`
}

// RecordsResponse is the explorer result.
type RecordsResponse struct {
	Total   int           `json:"total"`
	Columns []string      `json:"columns"`
	Records []core.Record `json:"records"`
}

// BucketResponse is one dataset of a snapshot.
type BucketResponse struct {
	Info     core.BucketInfo `json:"info"`
	Count    int             `json:"count"`
	Quantity float64         `json:"quantity"`
	Records  []core.Record   `json:"records"`
}

// SnapshotResponse is snapshot metadata returned by the API.
type SnapshotResponse struct {
	*core.Snapshot
	Analysis *core.AnalysisResult `json:"analysis,omitempty"`
}
