package core

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/ISS/internal/ingest"
	"github.com/JonMunkholm/ISS/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ServiceConfig holds the limits of a Service.
// Zero values select the defaults of DefaultServiceConfig.
type ServiceConfig struct {
	MaxFileSize   int64
	MaxConcurrent int
	MaxWaitTime   time.Duration
	IngestTimeout time.Duration
	SnapshotTTL   time.Duration
	MaxSnapshots  int
	Thresholds    ThresholdsConfig
}

// DefaultServiceConfig returns the limits used when none are configured.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxFileSize:   100 << 20,
		MaxConcurrent: DefaultMaxConcurrentIngests,
		MaxWaitTime:   DefaultMaxWaitTime,
		IngestTimeout: 2 * time.Minute,
		SnapshotTTL:   12 * time.Hour,
		MaxSnapshots:  200,
		Thresholds:    DefaultThresholds(),
	}
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	d := DefaultServiceConfig()
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = d.MaxFileSize
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	if c.MaxWaitTime <= 0 {
		c.MaxWaitTime = d.MaxWaitTime
	}
	if c.IngestTimeout <= 0 {
		c.IngestTimeout = d.IngestTimeout
	}
	if c.SnapshotTTL <= 0 {
		c.SnapshotTTL = d.SnapshotTTL
	}
	if c.MaxSnapshots <= 0 {
		c.MaxSnapshots = d.MaxSnapshots
	}
	return c
}

// Service holds ingested snapshots in memory and runs the dashboard and
// reconciliation computations over them. Snapshots expire after the
// configured TTL; nothing is persisted.
type Service struct {
	cfg     ServiceConfig
	limiter *IngestLimiter
	now     func() time.Time

	mu         sync.RWMutex
	snapshots  map[string]*Snapshot
	thresholds ThresholdsConfig
}

// Upload is one file handed to the Service.
type Upload struct {
	FileName string
	Reader   io.Reader
	Size     int64
}

// Comparison is the reconciliation of a start and an end snapshot.
type Comparison struct {
	Start       *Snapshot      `json:"start"`
	End         *Snapshot      `json:"end"`
	Changes     []ChangeRecord `json:"changes"`
	Summary     []TypeSummary  `json:"summary"`
	Transitions []Transition   `json:"transitions"`
}

// NewService creates a new Service instance.
func NewService(cfg ServiceConfig) *Service {
	cfg = cfg.withDefaults()
	thresholds := cfg.Thresholds
	if thresholds.Validate() != nil {
		thresholds = DefaultThresholds()
	}
	return &Service{
		cfg:        cfg,
		limiter:    NewIngestLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		now:        time.Now,
		snapshots:  make(map[string]*Snapshot),
		thresholds: thresholds,
	}
}

// ParseRole maps a form value to a SnapshotRole. Blank means RoleSingle.
func ParseRole(s string) (SnapshotRole, error) {
	switch SnapshotRole(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleSingle:
		return RoleSingle, nil
	case RoleStart:
		return RoleStart, nil
	case RoleEnd:
		return RoleEnd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Ingest parses an uploaded file and stores it as a new snapshot.
//
// Returns ErrTooManyIngests if no ingest slot frees up in time, and an
// error wrapping ingest.ErrFileTooLarge if size or the bytes read exceed
// the configured limit. A size of 0 means unknown.
func (s *Service) Ingest(ctx context.Context, fileName string, r io.Reader, size int64, role SnapshotRole) (*Snapshot, error) {
	log := logging.WithFields(ctx,
		"file", fileName,
		"role", role,
		"size", size,
		"user_agent", ClientFrom(ctx).UserAgent,
	)

	if size > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%s: %w: %d bytes exceeds %d", fileName, ingest.ErrFileTooLarge, size, s.cfg.MaxFileSize)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		log.Warn("ingest rejected", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.IngestTimeout)
	defer cancel()

	start := time.Now()
	sheet, err := ingest.Read(fileName, ingest.NewCountingReader(r, s.cfg.MaxFileSize))
	if err != nil {
		log.Warn("ingest failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", fileName, err)
	}

	table := NewTable(sheet.Columns, sheet.Rows)
	now := s.now()
	snap := &Snapshot{
		ID:         uuid.New().String(),
		Role:       role,
		FileName:   fileName,
		UploadedAt: now,
		UploadedBy: ClientFrom(ctx).IP,
		ExpiresAt:  now.Add(s.cfg.SnapshotTTL),
		Columns:    table.Columns,
		RowCount:   len(table.Records),
		Warnings:   ValidateTable(table),
		table:      table,
	}

	s.mu.Lock()
	s.snapshots[snap.ID] = snap
	evicted := s.trimLocked()
	s.mu.Unlock()

	log.Info("snapshot ingested",
		"snapshot_id", snap.ID,
		"rows", snap.RowCount,
		"columns", len(snap.Columns),
		"warnings", len(snap.Warnings),
		"evicted", evicted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// trimLocked drops the oldest snapshots beyond MaxSnapshots.
// Caller must hold s.mu for writing.
func (s *Service) trimLocked() int {
	over := len(s.snapshots) - s.cfg.MaxSnapshots
	if over <= 0 {
		return 0
	}
	all := make([]*Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		all = append(all, snap)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UploadedAt.Before(all[j].UploadedAt)
	})
	for _, snap := range all[:over] {
		delete(s.snapshots, snap.ID)
	}
	return over
}

// Snapshot returns a stored snapshot. Expired snapshots are removed and
// reported as ErrSnapshotNotFound.
func (s *Service) Snapshot(id string) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[id]
	s.mu.RUnlock()

	if ok && snap.Expired(s.now()) {
		s.mu.Lock()
		delete(s.snapshots, id)
		s.mu.Unlock()
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap, nil
}

// Snapshots lists live snapshots, newest first.
func (s *Service) Snapshots() []*Snapshot {
	now := s.now()

	s.mu.RLock()
	out := make([]*Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		if !snap.Expired(now) {
			out = append(out, snap)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

// DeleteSnapshot discards a snapshot before it expires.
func (s *Service) DeleteSnapshot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	delete(s.snapshots, id)
	return nil
}

// Analysis aggregates a snapshot with the current thresholds.
func (s *Service) Analysis(id string) (AnalysisResult, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return AnalysisResult{}, err
	}
	return Aggregate(snap.Records(), s.Thresholds()), nil
}

// Charts returns the chart series of a snapshot.
func (s *Service) Charts(id string) (ChartData, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return ChartData{}, err
	}
	records := snap.Records()
	return BuildCharts(Aggregate(records, s.Thresholds()), records), nil
}

// Breakdown counts a snapshot's records per category.
func (s *Service) Breakdown(id string) ([]CategoryCount, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return Breakdown(snap.Records()), nil
}

// Explore filters and sorts a snapshot's records.
func (s *Service) Explore(id string, q ExploreQuery) ([]Record, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return Explore(snap.Records(), q), nil
}

// BucketRecords returns one registered dataset of a snapshot.
func (s *Service) BucketRecords(id, bucketKey string) (BucketDefinition, Bucket, error) {
	def, err := Lookup(bucketKey)
	if err != nil {
		return BucketDefinition{}, Bucket{}, err
	}
	result, err := s.Analysis(id)
	if err != nil {
		return BucketDefinition{}, Bucket{}, err
	}
	return def, def.Select(result), nil
}

// Compare reconciles two stored snapshots.
func (s *Service) Compare(ctx context.Context, startID, endID string) (*Comparison, error) {
	start, err := s.Snapshot(startID)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := s.Snapshot(endID)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmp := NewComparison(start.Records(), end.Records())
	cmp.Start = start
	cmp.End = end

	logging.WithFields(ctx, "start_id", startID, "end_id", endID).Info("snapshots compared",
		"changes", len(cmp.Changes),
		"transitions", len(cmp.Transitions),
	)
	return cmp, nil
}

// CompareUploads ingests a start and an end file in parallel and
// reconciles them. When either side fails, neither snapshot is kept.
func (s *Service) CompareUploads(ctx context.Context, start, end Upload) (*Comparison, error) {
	var startSnap, endSnap *Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.Ingest(gctx, start.FileName, start.Reader, start.Size, RoleStart)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		startSnap = snap
		return nil
	})
	g.Go(func() error {
		snap, err := s.Ingest(gctx, end.FileName, end.Reader, end.Size, RoleEnd)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		endSnap = snap
		return nil
	})
	if err := g.Wait(); err != nil {
		for _, snap := range []*Snapshot{startSnap, endSnap} {
			if snap != nil {
				_ = s.DeleteSnapshot(snap.ID)
			}
		}
		return nil, err
	}

	return s.Compare(ctx, startSnap.ID, endSnap.ID)
}

// NewComparison diffs two record collections and summarizes the changes.
func NewComparison(start, end []Record) *Comparison {
	changes := Diff(start, end)
	if changes == nil {
		changes = []ChangeRecord{}
	}
	return &Comparison{
		Changes:     changes,
		Summary:     SummarizeChanges(changes),
		Transitions: Transitions(changes),
	}
}

// Thresholds returns the thresholds used by Analysis.
func (s *Service) Thresholds() ThresholdsConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// SetThresholds replaces the thresholds after validating them.
func (s *Service) SetThresholds(t ThresholdsConfig) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.thresholds = t
	s.mu.Unlock()
	return nil
}

// IngestLimiterStatus returns the state of the ingest limiter.
func (s *Service) IngestLimiterStatus() IngestLimiterStatus {
	return s.limiter.Status()
}

// WaitForIngests blocks until in-flight ingests finish or ctx is done.
func (s *Service) WaitForIngests(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// MaxFileSize returns the configured upload size limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}
