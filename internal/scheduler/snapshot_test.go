package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkshelf/internal/blob"
	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *blob.Memory) {
	t.Helper()
	mem := blob.NewMemory()
	return store.New(mem, logger.NewNop()), mem
}

func TestSnapshotNothingToCopy(t *testing.T) {
	_, mem := newTestStore(t)
	s := NewSnapshotter(mem, logger.NewNop(), 0)

	took, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, took)

	_, err = mem.Get(context.Background(), SnapshotKey)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestSnapshotSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	st, mem := newTestStore(t)
	_, err := st.Create(ctx, domain.BookmarkInput{Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)

	s := NewSnapshotter(mem, logger.NewNop(), 0)

	took, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, took)

	took, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, took)

	_, err = st.Create(ctx, domain.BookmarkInput{Title: "Chi", URL: "https://go-chi.io"})
	require.NoError(t, err)

	took, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, took)
}

func TestSnapshotKeepsGoodCopyWhenCorrupt(t *testing.T) {
	ctx := context.Background()
	st, mem := newTestStore(t)
	_, err := st.Create(ctx, domain.BookmarkInput{Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)

	s := NewSnapshotter(mem, logger.NewNop(), 0)
	_, err = s.Snapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, mem.Put(ctx, store.DocumentKey, []byte("{not json")))
	took, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, took)

	n, err := s.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all := st.ListAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Go", all[0].Title)
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	_, mem := newTestStore(t)
	s := NewSnapshotter(mem, logger.NewNop(), 0)

	_, err := s.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	ctx := context.Background()
	st, mem := newTestStore(t)
	_, err := st.Create(ctx, domain.BookmarkInput{Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)

	s := NewSnapshotter(mem, logger.NewNop(), time.Hour)
	s.Start(ctx)
	defer s.Stop()

	data, err := mem.Get(ctx, SnapshotKey)
	require.NoError(t, err)
	bookmarks, err := store.Decode(data)
	require.NoError(t, err)
	assert.Len(t, bookmarks, 1)
}

func TestStartDisabled(t *testing.T) {
	ctx := context.Background()
	st, mem := newTestStore(t)
	_, err := st.Create(ctx, domain.BookmarkInput{Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)

	s := NewSnapshotter(mem, logger.NewNop(), 0)
	s.Start(ctx)

	_, err = mem.Get(ctx, SnapshotKey)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}
