// Package scheduler runs background jobs next to the web app.
package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/blob"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
)

// SnapshotKey holds the last known good copy of the collection document.
const SnapshotKey = "bookmarks.snapshot.json"

// ErrNoSnapshot is returned by Restore when no snapshot was ever taken.
var ErrNoSnapshot = errors.New("no snapshot available")

// Snapshotter periodically copies the collection document to SnapshotKey on
// the same backend. Unchanged or unreadable documents are not copied, so a
// corrupted collection never overwrites a good snapshot.
type Snapshotter struct {
	backend  blob.Backend
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}

	last []byte
}

// NewSnapshotter creates a snapshot job. A non-positive interval disables the
// periodic run; Snapshot and Restore still work.
func NewSnapshotter(backend blob.Backend, log logger.Logger, interval time.Duration) *Snapshotter {
	return &Snapshotter{
		backend:  backend,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start takes a snapshot right away, then one per interval until ctx is
// canceled or Stop is called.
func (s *Snapshotter) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Debug("snapshots disabled")
		return
	}

	if _, err := s.Snapshot(ctx); err != nil {
		s.logger.Warn("initial snapshot failed", logger.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.Snapshot(ctx); err != nil {
					s.logger.Error("snapshot failed", logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the periodic run. It must be called at most once.
func (s *Snapshotter) Stop() {
	close(s.stopCh)
}

// Snapshot copies the current document if it decodes and differs from the
// last copy. It reports whether a copy was written. Not safe for concurrent use.
func (s *Snapshotter) Snapshot(ctx context.Context) (bool, error) {
	data, err := s.backend.Get(ctx, store.DocumentKey)
	if errors.Is(err, blob.ErrNotFound) {
		s.logger.Debug("no collection yet, nothing to snapshot")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read collection: %w", err)
	}

	bookmarks, err := store.Decode(data)
	if err != nil {
		s.logger.Warn("collection is corrupt, keeping previous snapshot", logger.Error(err))
		return false, nil
	}

	if s.last != nil && bytes.Equal(s.last, data) {
		s.logger.Debug("collection unchanged since last snapshot")
		return false, nil
	}

	if err := s.backend.Put(ctx, SnapshotKey, data); err != nil {
		return false, fmt.Errorf("write snapshot: %w", err)
	}
	s.last = data

	s.logger.Info("collection snapshot taken",
		logger.String("backend", s.backend.Name()),
		logger.Int("count", len(bookmarks)))
	return true, nil
}

// Restore overwrites the collection with the snapshot and returns how many
// bookmarks it holds.
func (s *Snapshotter) Restore(ctx context.Context) (int, error) {
	data, err := s.backend.Get(ctx, SnapshotKey)
	if errors.Is(err, blob.ErrNotFound) {
		return 0, ErrNoSnapshot
	}
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}

	bookmarks, err := store.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("snapshot is corrupt: %w", err)
	}

	if err := s.backend.Put(ctx, store.DocumentKey, data); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrStorageWrite, err)
	}

	s.logger.Info("collection restored from snapshot", logger.Int("count", len(bookmarks)))
	return len(bookmarks), nil
}
