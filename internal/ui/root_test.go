package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/kalite-mobile/internal/content"
	"github.com/ytget/kalite-mobile/internal/model"
)

type fakeEnqueuer struct {
	tasks []model.DownloadTask
	err   error
	calls int
}

func (e *fakeEnqueuer) EnqueueBundle(context.Context, []content.Asset) ([]model.DownloadTask, error) {
	e.calls++
	return e.tasks, e.err
}

type fakePoller struct {
	results []model.Aggregate
	calls   int
}

func (p *fakePoller) Poll(context.Context, []int64) (model.Aggregate, error) {
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	return p.results[i], nil
}

type fakeServer struct {
	starts int
	err    error
}

func (s *fakeServer) Start(context.Context) error {
	s.starts++
	return s.err
}

func (s *fakeServer) PageURL(page string) string {
	return "http://127.0.0.1:8032/" + page
}

type queuedScheduler struct {
	pending []func()
}

func (s *queuedScheduler) AfterFunc(_ time.Duration, f func()) {
	s.pending = append(s.pending, f)
}

func (s *queuedScheduler) fire() {
	f := s.pending[0]
	s.pending = s.pending[1:]
	f()
}

type openedVideo struct {
	uri, mimeType string
}

type harness struct {
	ui        *RootUI
	store     *content.Store
	enqueuer  *fakeEnqueuer
	poller    *fakePoller
	server    *fakeServer
	scheduler *queuedScheduler
	opened    []openedVideo
}

var bundleTasks = []model.DownloadTask{
	{ID: 7, DestinationName: content.VideoName},
	{ID: 8, DestinationName: content.PosterName},
	{ID: 9, DestinationName: content.SubtitleName},
}

func uniform(state model.DownloadState, downloaded, total int64) model.Aggregate {
	agg := model.NewAggregate(model.IDs(bundleTasks))
	for id := range agg {
		agg[id] = model.NewSnapshot(downloaded, total, state)
	}
	return agg
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	app := test.NewApp()
	h := &harness{
		store:     content.NewStore(filepath.Join(t.TempDir(), "content")),
		enqueuer:  &fakeEnqueuer{tasks: bundleTasks},
		poller:    &fakePoller{results: []model.Aggregate{uniform(model.StateSuccessful, 10, 10)}},
		server:    &fakeServer{},
		scheduler: &queuedScheduler{},
	}

	h.ui = NewRootUI(context.Background(), test.NewWindow(nil), app, Options{
		Store:    h.store,
		Enqueuer: h.enqueuer,
		Poller:   h.poller,
		Server:   h.server,
		OpenVideo: func(uri, mimeType string) error {
			h.opened = append(h.opened, openedVideo{uri, mimeType})
			return nil
		},
		Scheduler: h.scheduler,
	})

	return h
}

func TestRootUI_WatchOpensAvailableVideo(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.MarkCompleted())

	h.ui.onWatch()

	require.Len(t, h.opened, 1)
	assert.Equal(t, h.store.URI(content.VideoName), h.opened[0].uri)
	assert.Equal(t, "video/*", h.opened[0].mimeType)
	assert.Zero(t, h.enqueuer.calls)
}

func TestRootUI_DownloadDeclined(t *testing.T) {
	h := newHarness(t)

	h.ui.onDownloadConfirmed(false)

	assert.Zero(t, h.enqueuer.calls)
	assert.Nil(t, h.ui.progressPopup)
}

func TestRootUI_DownloadFlow(t *testing.T) {
	h := newHarness(t)
	h.poller.results = []model.Aggregate{
		uniform(model.StateRunning, 5, 10),
		uniform(model.StateSuccessful, 10, 10),
	}

	h.ui.onDownloadConfirmed(true)

	require.NotNil(t, h.ui.progressPopup)
	assert.True(t, h.ui.progressPopup.Visible())
	assert.Equal(t, "Running download of add_sub.mp4: 5 of 10 (50%)", h.ui.progressPopup.Row(7).Text())
	assert.Equal(t, "Running download of add_sub.srt: 5 of 10 (50%)", h.ui.progressPopup.Row(9).Text())
	assert.False(t, h.store.VideoAvailable())
	require.Len(t, h.scheduler.pending, 1)

	h.scheduler.fire()

	assert.Nil(t, h.ui.progressPopup)
	assert.True(t, h.store.VideoAvailable())
	assert.Empty(t, h.scheduler.pending)
	// auto-play is on by default, so completion watches the video
	require.Len(t, h.opened, 1)
	assert.Equal(t, h.store.URI(content.VideoName), h.opened[0].uri)
}

func TestRootUI_DownloadWithoutAutoPlay(t *testing.T) {
	h := newHarness(t)
	h.ui.settings.SetAutoPlayOnComplete(false)

	h.ui.onDownloadConfirmed(true)

	assert.True(t, h.store.VideoAvailable())
	assert.Empty(t, h.opened)
	assert.Equal(t, "Download completed", h.ui.lastToast)
}

func TestRootUI_WatchWhileDownloading(t *testing.T) {
	h := newHarness(t)
	h.poller.results = []model.Aggregate{uniform(model.StatePending, 0, 0)}

	h.ui.onDownloadConfirmed(true)
	h.ui.onWatch()

	assert.Equal(t, "Download already in progress", h.ui.lastToast)
	assert.Equal(t, 1, h.enqueuer.calls)
}

func TestRootUI_EnqueueFailure(t *testing.T) {
	h := newHarness(t)
	h.enqueuer.err = errors.New("invalid download url")

	h.ui.onDownloadConfirmed(true)

	assert.Nil(t, h.ui.progressPopup)
	assert.Contains(t, h.ui.lastToast, "Download failed")
	assert.Zero(t, h.poller.calls)
}

func TestRootUI_DeleteEmpty(t *testing.T) {
	h := newHarness(t)

	h.ui.onDelete()

	assert.Equal(t, "Video does not exist", h.ui.lastToast)
}

func TestRootUI_DeleteContent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.EnsureDir())
	require.NoError(t, os.WriteFile(h.store.Path(content.VideoName), []byte("video"), 0o644))
	require.NoError(t, h.store.MarkCompleted())
	h.ui.refreshAvailability()

	h.ui.onDelete()

	assert.Equal(t, "Video deleted successfully", h.ui.lastToast)
	assert.False(t, h.store.VideoAvailable())
	assert.False(t, h.ui.poster.Visible())
	assert.Equal(t, "Video is not downloaded yet", h.ui.availabilityLabel.Text)
}

func TestRootUI_Browse(t *testing.T) {
	h := newHarness(t)

	h.ui.onBrowse()
	h.ui.onBrowse()

	assert.Equal(t, 2, h.server.starts)
	assert.Empty(t, h.ui.lastToast)
}

func TestRootUI_BrowseServerError(t *testing.T) {
	h := newHarness(t)
	h.server.err = errors.New("address already in use")

	h.ui.onBrowse()

	assert.Contains(t, h.ui.lastToast, "Error starting exercise server")
}
