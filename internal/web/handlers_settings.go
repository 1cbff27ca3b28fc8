package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/logging"
)

// BucketGroup is one dashboard card with its datasets.
type BucketGroup struct {
	Name    string            `json:"name"`
	Buckets []core.BucketInfo `json:"buckets"`
}

// handleListBuckets returns the registered datasets grouped by card, in
// dashboard order.
func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	var groups []BucketGroup
	index := make(map[string]int)
	for _, def := range core.All() {
		i, ok := index[def.Info.Group]
		if !ok {
			i = len(groups)
			index[def.Info.Group] = i
			groups = append(groups, BucketGroup{Name: def.Info.Group})
		}
		groups[i].Buckets = append(groups[i].Buckets, def.Info)
	}
	writeJSON(w, groups)
}

// handleGetSettings returns the current age thresholds.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Thresholds())
}

// handlePutSettings replaces the age thresholds. Omitted fields keep their
// current values.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	t := s.service.Thresholds()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.service.SetThresholds(t); err != nil {
		s.fail(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("thresholds updated",
		"fc_receive", t.FCReceiveAgeThreshold,
		"fc_actionable", t.FCActionableAgeThreshold,
		"mfi", t.MFIAgeThreshold,
	)
	writeJSON(w, t)
}

// handleIngestStatus returns the current state of the ingest limiter.
// Used for monitoring and to check if the system can accept more uploads.
func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.IngestLimiterStatus())
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ok",
		"snapshots": len(s.service.Snapshots()),
	})
}
