package download_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/kalite-mobile/internal/content"
	"github.com/ytget/kalite-mobile/internal/download"
	"github.com/ytget/kalite-mobile/internal/model"
)

type fakeManager struct {
	requests []download.Request
	failOn   string
	nextID   int64
}

func (m *fakeManager) Enqueue(_ context.Context, req download.Request) (int64, error) {
	if req.URL == m.failOn {
		return 0, download.ErrInvalidURL
	}
	m.requests = append(m.requests, req)
	m.nextID++
	return m.nextID, nil
}

func (m *fakeManager) Query(context.Context, ...int64) ([]download.StatusRow, error) {
	return nil, nil
}

func TestEnqueuer_Enqueue(t *testing.T) {
	store := content.NewStore(filepath.Join(t.TempDir(), "content"))
	manager := &fakeManager{}
	enqueuer := download.NewEnqueuer(manager, store)

	task, err := enqueuer.Enqueue(context.Background(), content.VideoName, "http://example.com/v.mp4")
	require.NoError(t, err)

	assert.Equal(t, model.DownloadTask{ID: 1, DestinationName: content.VideoName, URL: "http://example.com/v.mp4"}, task)
	assert.DirExists(t, filepath.Dir(store.Path(content.VideoName)))
	require.Len(t, manager.requests, 1)
	assert.Equal(t, store.Path(content.VideoName), manager.requests[0].Destination)
}

func TestEnqueuer_EnqueueBundle(t *testing.T) {
	store := content.NewStore(filepath.Join(t.TempDir(), "content"))
	enqueuer := download.NewEnqueuer(&fakeManager{}, store)

	tasks, err := enqueuer.EnqueueBundle(context.Background(), content.DefaultBundle())
	require.NoError(t, err)

	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{1, 2, 3}, model.IDs(tasks))
	assert.Equal(t, content.VideoName, tasks[0].DestinationName)
	assert.Equal(t, content.PosterName, tasks[1].DestinationName)
	assert.Equal(t, content.SubtitleName, tasks[2].DestinationName)
}

func TestEnqueuer_EnqueueBundle_StopsAtFirstError(t *testing.T) {
	bundle := content.DefaultBundle()
	manager := &fakeManager{failOn: bundle[1].URL}
	enqueuer := download.NewEnqueuer(manager, content.NewStore(t.TempDir()))

	tasks, err := enqueuer.EnqueueBundle(context.Background(), bundle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, download.ErrInvalidURL))
	assert.Len(t, tasks, 1)
	assert.Len(t, manager.requests, 1)
}
