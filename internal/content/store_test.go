package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	store := NewStore(dir)

	require.NoError(t, store.EnsureDir())
	require.NoError(t, store.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_PathAndURI(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	assert.Equal(t, filepath.Join(dir, VideoName), store.Path(VideoName))
	assert.True(t, strings.HasPrefix(store.URI(VideoName), "file://"))
	assert.True(t, strings.HasSuffix(store.URI(VideoName), "/"+VideoName))
}

func TestStore_MarkCompleted(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "content"))

	assert.False(t, store.VideoAvailable())

	require.NoError(t, store.MarkCompleted())
	assert.True(t, store.VideoAvailable())

	// Marking twice keeps a zero-byte marker
	require.NoError(t, store.MarkCompleted())
	info, err := os.Stat(store.Path(CompletedMarker))
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestStore_DeleteAll(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, name := range []string{VideoName, PosterName, SubtitleName} {
		require.NoError(t, os.WriteFile(store.Path(name), []byte("data"), 0o644))
	}
	require.NoError(t, store.MarkCompleted())

	removed, err := store.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	assert.False(t, store.VideoAvailable())
	assert.False(t, store.Exists(VideoName))
}

func TestStore_DeleteAll_Empty(t *testing.T) {
	store := NewStore(t.TempDir())

	removed, err := store.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestStore_DeleteAll_MissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"))

	removed, err := store.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestStore_FreeSpace(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "not", "created"))

	free, err := store.FreeSpace()
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}

func TestDefaultBundle(t *testing.T) {
	bundle := DefaultBundle()
	require.Len(t, bundle, 3)

	names := map[string]bool{}
	for _, asset := range bundle {
		names[asset.Name] = true
		assert.True(t, strings.HasPrefix(asset.URL, "http://"), asset.URL)
	}
	assert.True(t, names[VideoName])
	assert.True(t, names[PosterName])
	assert.True(t, names[SubtitleName])
}
