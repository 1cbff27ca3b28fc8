package core

// scheduler.go runs the background sweep that drops expired snapshots.
//
// Lookups already evict lazily; the sweep frees memory held by snapshots
// nobody asks for again. It stops when its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultEvictionInterval is how often the sweep runs when no interval is given.
const DefaultEvictionInterval = 5 * time.Minute

// StartEvictionScheduler sweeps expired snapshots immediately and then
// every interval until ctx is cancelled. Run it in its own goroutine.
func (s *Service) StartEvictionScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultEvictionInterval
	}
	slog.Info("eviction scheduler started",
		"interval", interval.String(),
		"snapshot_ttl", s.cfg.SnapshotTTL.String(),
	)

	s.runEvictionJob()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("eviction scheduler stopped")
			return
		case <-ticker.C:
			s.runEvictionJob()
		}
	}
}

// runEvictionJob performs one sweep and logs what it removed.
func (s *Service) runEvictionJob() {
	start := time.Now()
	evicted := s.EvictExpired()
	if evicted == 0 {
		slog.Debug("eviction job completed", "evicted", 0)
		return
	}
	slog.Info("eviction job completed",
		"evicted", evicted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// EvictExpired removes every expired snapshot and returns how many it removed.
func (s *Service) EvictExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, snap := range s.snapshots {
		if snap.Expired(now) {
			delete(s.snapshots, id)
			n++
		}
	}
	return n
}
