package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/kalite-mobile/internal/storage"
	"github.com/ytget/kalite-mobile/internal/storage/sqlite"
)

func newRepository(t *testing.T) *sqlite.DownloadRepository {
	t.Helper()

	db, err := sqlite.InitDB(filepath.Join(t.TempDir(), "downloads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlite.NewDownloadRepository(db)
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "downloads.db")

	db, err := sqlite.InitDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.InitDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestDownloadRepository_CreateAndGet(t *testing.T) {
	repo := newRepository(t)

	first, err := repo.Create("http://example.com/a.mp4", "/content/a.mp4", 1)
	require.NoError(t, err)
	second, err := repo.Create("http://example.com/b.png", "/content/b.png", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	records, err := repo.GetByIDs(second, first)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, "http://example.com/a.mp4", records[0].URL)
	assert.Equal(t, "/content/a.mp4", records[0].Destination)
	assert.Equal(t, int64(0), records[0].BytesDownloaded)
	assert.Equal(t, int64(-1), records[0].TotalBytes)
	assert.Equal(t, 1, records[0].Status)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestDownloadRepository_GetByIDs_SkipsUnknown(t *testing.T) {
	repo := newRepository(t)

	id, err := repo.Create("http://example.com/a.mp4", "/content/a.mp4", 1)
	require.NoError(t, err)

	records, err := repo.GetByIDs(id, id+100)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)

	records, err = repo.GetByIDs()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDownloadRepository_Updates(t *testing.T) {
	repo := newRepository(t)

	id, err := repo.Create("http://example.com/a.mp4", "/content/a.mp4", 1)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProgress(id, 250, 500))
	require.NoError(t, repo.UpdateStatus(id, 2, ""))

	records, err := repo.GetByIDs(id)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(250), records[0].BytesDownloaded)
	assert.Equal(t, int64(500), records[0].TotalBytes)
	assert.Equal(t, 2, records[0].Status)

	require.NoError(t, repo.UpdateStatus(id, 16, "http 404"))
	records, err = repo.GetByIDs(id)
	require.NoError(t, err)
	assert.Equal(t, "http 404", records[0].Reason)
}

func TestDownloadRepository_UpdateMissing(t *testing.T) {
	repo := newRepository(t)

	err := repo.UpdateStatus(42, 8, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.UpdateProgress(42, 1, 2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
