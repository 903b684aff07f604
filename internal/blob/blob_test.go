package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T) Backend

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T) Backend {
			return NewMemory()
		},
		"file": func(t *testing.T) Backend {
			b, err := NewFile(filepath.Join(t.TempDir(), "data"))
			require.NoError(t, err)
			return b
		},
		"bolt": func(t *testing.T) Backend {
			b, err := NewBolt(filepath.Join(t.TempDir(), "shelf.bolt"))
			require.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := NewSQLite(filepath.Join(t.TempDir(), "shelf.db"))
			require.NoError(t, err)
			return b
		},
		"redis": func(t *testing.T) Backend {
			mr := miniredis.RunT(t)
			return NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "linkshelf:")
		},
	}
}

func TestBackendContract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := factory(t)
			defer func() { _ = b.Close() }()

			assert.Equal(t, name, b.Name())
			require.NoError(t, b.Ping(ctx))

			_, err := b.Get(ctx, "bookmarks.json")
			assert.ErrorIs(t, err, ErrNotFound, "absent key")

			require.NoError(t, b.Put(ctx, "bookmarks.json", []byte(`[{"id":"a"}]`)))
			got, err := b.Get(ctx, "bookmarks.json")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, string(got))

			require.NoError(t, b.Put(ctx, "bookmarks.json", []byte(`[]`)))
			got, err = b.Get(ctx, "bookmarks.json")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got), "put replaces the previous value")

			_, err = b.Get(ctx, "other.json")
			assert.ErrorIs(t, err, ErrNotFound, "keys are independent")
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", in))
	in[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	assert.ErrorIs(t, m.Put(ctx, "k", []byte("v")), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		assert.Error(t, f.Put(ctx, key, []byte("x")), "key %q", key)
	}
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Put(ctx, "bookmarks.json", []byte("[]")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bookmarks.json", entries[0].Name())
}

func TestFilePingMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	assert.Error(t, f.Ping(context.Background()))
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shelf.bolt")

	b, err := NewBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, "bookmarks.json", []byte(`["kept"]`)))
	require.NoError(t, b.Close())

	b, err = NewBolt(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	got, err := b.Get(ctx, "bookmarks.json")
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))
}

func TestRedisUsesPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	r := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "shelf:")
	defer func() { _ = r.Close() }()

	require.NoError(t, r.Put(ctx, "bookmarks.json", []byte("[]")))

	v, err := mr.Get("shelf:bookmarks.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
	assert.False(t, mr.Exists("bookmarks.json"))
}

func TestRedisErrorIsNotNotFound(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), "")
	mr.Close()

	_, err := r.Get(context.Background(), "bookmarks.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
