package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/ISS/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceCSV = "Title,Item,IssueUrl,Quantity,Status,Age,PendingReason,PhysicalLocation\n" +
	"Andon Cord,Widget,u1,3,Open,4,,\n" +
	"Damaged,C-Return Gizmo,u2,2,Open,1,,dock\n" +
	"Check,Thing,u3,lots,Open,12,FC Receive,\n"

// clock is a settable time source for Service.now.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, cfg ServiceConfig) (*Service, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	s := NewService(cfg)
	s.now = c.now
	return s, c
}

func ingestCSV(t *testing.T, s *Service, name, body string) *Snapshot {
	t.Helper()
	snap, err := s.Ingest(context.Background(), name, strings.NewReader(body), int64(len(body)), RoleSingle)
	require.NoError(t, err)
	return snap
}

func TestService_Ingest(t *testing.T) {
	s, c := newTestService(t, ServiceConfig{SnapshotTTL: time.Hour})
	ctx := WithClient(context.Background(), Client{IP: "10.1.2.3"})

	snap, err := s.Ingest(ctx, "shift.csv", strings.NewReader(serviceCSV), 0, RoleStart)
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, RoleStart, snap.Role)
	assert.Equal(t, "shift.csv", snap.FileName)
	assert.Equal(t, "10.1.2.3", snap.UploadedBy)
	assert.Equal(t, c.t, snap.UploadedAt)
	assert.Equal(t, c.t.Add(time.Hour), snap.ExpiresAt)
	assert.Equal(t, 3, snap.RowCount)
	assert.Len(t, snap.Columns, 8)
	require.Len(t, snap.Warnings, 1)
	assert.Equal(t, FieldQuantity, snap.Warnings[0].Field)
	assert.Equal(t, "u2", snap.Records()[1].IssueURL.Text())

	got, err := s.Snapshot(snap.ID)
	require.NoError(t, err)
	assert.Same(t, snap, got)
}

func TestService_IngestErrors(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{MaxFileSize: 64})
	ctx := context.Background()

	_, err := s.Ingest(ctx, "big.csv", strings.NewReader("Item\n"), 65, RoleSingle)
	assert.ErrorIs(t, err, ingest.ErrFileTooLarge)

	// An unknown size is still bounded while reading.
	body := "Item\n" + strings.Repeat("widget\n", 20)
	_, err = s.Ingest(ctx, "big.csv", strings.NewReader(body), 0, RoleSingle)
	assert.ErrorIs(t, err, ingest.ErrFileTooLarge)

	_, err = s.Ingest(ctx, "notes.txt", strings.NewReader("Item\n"), 5, RoleSingle)
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)

	_, err = s.Ingest(ctx, "empty.csv", strings.NewReader(""), 0, RoleSingle)
	assert.ErrorIs(t, err, ingest.ErrEmptyFile)

	assert.Empty(t, s.Snapshots())
	assert.Equal(t, 0, s.IngestLimiterStatus().Active)
}

func TestService_IngestBusy(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{MaxConcurrent: 1, MaxWaitTime: 20 * time.Millisecond})
	require.True(t, s.limiter.TryAcquire())
	defer s.limiter.Release()

	_, err := s.Ingest(context.Background(), "shift.csv", strings.NewReader(serviceCSV), 0, RoleSingle)
	assert.ErrorIs(t, err, ErrTooManyIngests)
}

func TestService_SnapshotExpiry(t *testing.T) {
	s, c := newTestService(t, ServiceConfig{SnapshotTTL: time.Hour})
	snap := ingestCSV(t, s, "a.csv", serviceCSV)

	c.t = c.t.Add(59 * time.Minute)
	_, err := s.Snapshot(snap.ID)
	require.NoError(t, err)

	c.t = c.t.Add(time.Minute)
	_, err = s.Snapshot(snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = s.Analysis(snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestService_SnapshotsNewestFirst(t *testing.T) {
	s, c := newTestService(t, ServiceConfig{MaxSnapshots: 2})

	first := ingestCSV(t, s, "a.csv", serviceCSV)
	c.t = c.t.Add(time.Minute)
	second := ingestCSV(t, s, "b.csv", serviceCSV)
	c.t = c.t.Add(time.Minute)
	third := ingestCSV(t, s, "c.csv", serviceCSV)

	got := s.Snapshots()
	require.Len(t, got, 2)
	assert.Equal(t, third.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	_, err := s.Snapshot(first.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestService_DeleteSnapshot(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})
	snap := ingestCSV(t, s, "a.csv", serviceCSV)

	require.NoError(t, s.DeleteSnapshot(snap.ID))
	assert.ErrorIs(t, s.DeleteSnapshot(snap.ID), ErrSnapshotNotFound)
}

func TestService_EvictExpired(t *testing.T) {
	s, c := newTestService(t, ServiceConfig{SnapshotTTL: time.Hour})
	ingestCSV(t, s, "a.csv", serviceCSV)
	c.t = c.t.Add(30 * time.Minute)
	live := ingestCSV(t, s, "b.csv", serviceCSV)

	c.t = c.t.Add(45 * time.Minute)
	assert.Equal(t, 1, s.EvictExpired())
	assert.Equal(t, 0, s.EvictExpired())

	got := s.Snapshots()
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)
}

func TestService_StartEvictionScheduler(t *testing.T) {
	s, c := newTestService(t, ServiceConfig{SnapshotTTL: time.Minute})
	ingestCSV(t, s, "a.csv", serviceCSV)
	c.t = c.t.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.StartEvictionScheduler(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.snapshots) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestService_Views(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})
	snap := ingestCSV(t, s, "a.csv", serviceCSV)

	result, err := s.Analysis(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalIssues)
	assert.Equal(t, 1, result.CRET.Count)
	assert.Equal(t, 1, result.FCReceive.Count)
	assert.Equal(t, 1, result.FCReceive.AgeOverThreshold)
	assert.Equal(t, 1, result.BinCheck.AndonCord.Count)

	charts, err := s.Charts(snap.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, charts.Categories)

	counts, err := s.Breakdown(snap.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, counts)

	rows, err := s.Explore(snap.ID, ExploreQuery{Search: "gizmo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, urls(rows))
}

func TestService_Compare(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})
	start := ingestCSV(t, s, "start.csv", serviceCSV)
	end := ingestCSV(t, s, "end.csv", strings.Replace(serviceCSV, "Andon Cord,Widget,u1,3,Open", "Andon Cord,Widget,u1,7,Resolved", 1))

	cmp, err := s.Compare(context.Background(), start.ID, end.ID)
	require.NoError(t, err)
	assert.Same(t, start, cmp.Start)
	assert.Same(t, end, cmp.End)
	require.Len(t, cmp.Changes, 2)
	assert.Equal(t, "u1", cmp.Changes[0].Key)
	assert.Equal(t, ChangeQtyIncreased, cmp.Changes[0].ChangeType)
	assert.Equal(t, 4.0, cmp.Changes[0].QtyDelta)
	assert.Equal(t, "u1__status", cmp.Changes[1].Key)
	assert.Equal(t, ChangeStatusChanged, cmp.Changes[1].ChangeType)

	_, err = s.Compare(context.Background(), "missing", end.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.Contains(t, err.Error(), "start")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Compare(ctx, start.ID, end.ID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_CompareUploads(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})

	cmp, err := s.CompareUploads(context.Background(),
		Upload{FileName: "start.csv", Reader: strings.NewReader(serviceCSV)},
		Upload{FileName: "end.csv", Reader: strings.NewReader(serviceCSV)},
	)
	require.NoError(t, err)
	assert.NotNil(t, cmp.Changes)
	assert.Empty(t, cmp.Changes)
	assert.Equal(t, RoleStart, cmp.Start.Role)
	assert.Equal(t, RoleEnd, cmp.End.Role)

	_, err = s.CompareUploads(context.Background(),
		Upload{FileName: "start.pdf", Reader: strings.NewReader("x")},
		Upload{FileName: "end.csv", Reader: strings.NewReader(serviceCSV)},
	)
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "start")
	assert.Len(t, s.Snapshots(), 2)
}

func TestService_CompareUploads_FailedSideDropsOther(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})

	_, err := s.CompareUploads(context.Background(),
		Upload{FileName: "start.csv", Reader: strings.NewReader(serviceCSV)},
		Upload{FileName: "end.csv", Reader: strings.NewReader("")},
	)
	assert.ErrorIs(t, err, ingest.ErrEmptyFile)
	assert.Empty(t, s.Snapshots())
}

func TestService_Thresholds(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{Thresholds: ThresholdsConfig{FCReceiveAgeThreshold: -1}})
	assert.Equal(t, DefaultThresholds(), s.Thresholds())

	err := s.SetThresholds(ThresholdsConfig{MFIAgeThreshold: -3})
	assert.ErrorIs(t, err, ErrInvalidThresholds)
	assert.Equal(t, DefaultThresholds(), s.Thresholds())

	custom := ThresholdsConfig{FCReceiveAgeThreshold: 1, FCActionableAgeThreshold: 2, MFIAgeThreshold: 3}
	require.NoError(t, s.SetThresholds(custom))
	assert.Equal(t, custom, s.Thresholds())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    SnapshotRole
		wantErr bool
	}{
		{"", RoleSingle, false},
		{"single", RoleSingle, false},
		{" Start ", RoleStart, false},
		{"END", RoleEnd, false},
		{"middle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRole, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
