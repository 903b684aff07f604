// Package store persists the bookmark collection as one JSON document.
//
// Every mutation reads the whole document, changes it in memory and writes the
// whole document back. There is no version token or lock: when two mutations
// overlap, the last write wins and the other change is lost. That is accepted
// for a single-user tool.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/blob"
	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
)

// DocumentKey is the fixed blob key of the collection document.
const DocumentKey = "bookmarks.json"

var (
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("bookmark not found")
	// ErrStorageWrite wraps any failure to persist the collection.
	ErrStorageWrite = errors.New("failed to save bookmarks")
	// ErrStorageRead wraps a backend failure while loading the collection
	// ahead of a mutation. Nothing is written in that case.
	ErrStorageRead = errors.New("failed to load bookmarks")
)

// Store owns the persisted collection.
type Store struct {
	backend blob.Backend
	logger  logger.Logger
	now     func() time.Time
	newID   func() (string, error)
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides domain.NewID (tests).
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a store over backend.
func New(backend blob.Backend, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  log,
		now:     time.Now,
		newID:   domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend exposes the storage binding for health reporting.
func (s *Store) Backend() blob.Backend { return s.backend }

// ListAll returns the whole collection. It never fails: a missing document is
// the "no data yet" state, and an unreadable or corrupt one is logged and
// treated as empty.
func (s *Store) ListAll(ctx context.Context) []domain.Bookmark {
	bookmarks, err := s.load(ctx)
	if err != nil {
		s.logger.Error("failed to read bookmarks, serving empty collection",
			logger.String("backend", s.backend.Name()),
			logger.Error(err))
		return []domain.Bookmark{}
	}
	return bookmarks
}

// load is the read half of every mutation. Absent and corrupt documents are
// empty, but a backend failure is returned so nothing is written over data
// that could not be read.
func (s *Store) load(ctx context.Context) ([]domain.Bookmark, error) {
	data, err := s.backend.Get(ctx, DocumentKey)
	if errors.Is(err, blob.ErrNotFound) {
		return []domain.Bookmark{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}

	bookmarks, err := Decode(data)
	if err != nil {
		s.logger.Error("failed to parse bookmarks document, treating as empty",
			logger.String("key", DocumentKey),
			logger.Int("bytes", len(data)),
			logger.Error(err))
		return []domain.Bookmark{}, nil
	}
	return bookmarks, nil
}

// Get finds one bookmark by id with a linear scan.
func (s *Store) Get(ctx context.Context, id string) (domain.Bookmark, error) {
	for _, b := range s.ListAll(ctx) {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Bookmark{}, ErrNotFound
}

// Create validates in, prepends a new bookmark and saves the collection.
func (s *Store) Create(ctx context.Context, in domain.BookmarkInput) (domain.Bookmark, error) {
	if err := in.Validate(); err != nil {
		return domain.Bookmark{}, err
	}

	id, err := s.newID()
	if err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to generate id: %w", err)
	}
	bookmark := domain.NewBookmark(id, in.Normalize(), s.now())

	current, err := s.load(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}
	updated := make([]domain.Bookmark, 0, len(current)+1)
	updated = append(updated, bookmark)
	updated = append(updated, current...)

	if err := s.save(ctx, updated); err != nil {
		return domain.Bookmark{}, err
	}

	s.logger.Info("bookmark created",
		logger.String("id", bookmark.ID),
		logger.String("url", bookmark.URL))
	return bookmark, nil
}

// Update rewrites the editable fields of the bookmark with this id.
// An unknown id is not an error: the collection is written back unchanged.
func (s *Store) Update(ctx context.Context, id string, in domain.BookmarkInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	in = in.Normalize()

	bookmarks, err := s.load(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range bookmarks {
		if bookmarks[i].ID == id {
			bookmarks[i] = bookmarks[i].Apply(in)
			found = true
		}
	}

	if err := s.save(ctx, bookmarks); err != nil {
		return err
	}

	if found {
		s.logger.Info("bookmark updated", logger.String("id", id))
	} else {
		s.logger.Debug("update for unknown bookmark ignored", logger.String("id", id))
	}
	return nil
}

// Delete removes the bookmark with this id, if any, and saves the collection.
func (s *Store) Delete(ctx context.Context, id string) error {
	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.Bookmark, 0, len(current))
	for _, b := range current {
		if b.ID != id {
			kept = append(kept, b)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	s.logger.Info("bookmark deleted",
		logger.String("id", id),
		logger.Bool("existed", len(kept) != len(current)))
	return nil
}

// Clear persists an empty collection regardless of what was there.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.save(ctx, []domain.Bookmark{}); err != nil {
		return err
	}
	s.logger.Info("all bookmarks cleared")
	return nil
}

// Seed writes bookmarks only when the collection is empty, and returns how
// many were written. Existing data is never touched.
func (s *Store) Seed(ctx context.Context, bookmarks []domain.Bookmark) (int, error) {
	current, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if len(current) > 0 {
		s.logger.Info("collection not empty, seed skipped")
		return 0, nil
	}
	if err := s.save(ctx, bookmarks); err != nil {
		return 0, err
	}
	s.logger.Info("collection seeded", logger.Int("count", len(bookmarks)))
	return len(bookmarks), nil
}

// Import validates every input, then prepends them all in a single write.
// One invalid input aborts the import before anything is written.
func (s *Store) Import(ctx context.Context, inputs []domain.BookmarkInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	now := s.now()
	fresh := make([]domain.Bookmark, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return 0, fmt.Errorf("entry %d (%q): %w", i+1, in.Title, err)
		}
		id, err := s.newID()
		if err != nil {
			return 0, fmt.Errorf("failed to generate id: %w", err)
		}
		fresh = append(fresh, domain.NewBookmark(id, in.Normalize(), now))
	}

	current, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	updated := append(fresh, current...)
	if err := s.save(ctx, updated); err != nil {
		return 0, err
	}

	s.logger.Info("bookmarks imported", logger.Int("count", len(fresh)))
	return len(fresh), nil
}

func (s *Store) save(ctx context.Context, bookmarks []domain.Bookmark) error {
	data, err := Encode(bookmarks)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := s.backend.Put(ctx, DocumentKey, data); err != nil {
		s.logger.Error("failed to write bookmarks",
			logger.String("backend", s.backend.Name()),
			logger.Error(err))
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// Encode serializes a collection. A nil collection is written as [].
func Encode(bookmarks []domain.Bookmark) ([]byte, error) {
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	for i := range bookmarks {
		if bookmarks[i].Tags == nil {
			bookmarks[i].Tags = []string{}
		}
	}
	return json.Marshal(bookmarks)
}

// Decode parses a collection document. A JSON null is an empty collection.
func Decode(data []byte) ([]domain.Bookmark, error) {
	var bookmarks []domain.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	for i := range bookmarks {
		if bookmarks[i].Tags == nil {
			bookmarks[i].Tags = []string{}
		}
	}
	return bookmarks, nil
}
