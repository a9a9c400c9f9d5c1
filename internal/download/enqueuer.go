package download

import (
	"context"
	"fmt"

	"github.com/ytget/kalite-mobile/internal/content"
	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/model"
)

// Directory is the local folder downloads are written to.
type Directory interface {
	EnsureDir() error
	Path(name string) string
}

// Enqueuer submits named downloads into the content directory.
type Enqueuer struct {
	manager Manager
	dir     Directory
}

// NewEnqueuer creates an enqueuer writing into dir.
func NewEnqueuer(manager Manager, dir Directory) *Enqueuer {
	return &Enqueuer{manager: manager, dir: dir}
}

// Enqueue submits url to be saved as name and returns the tracked task.
func (e *Enqueuer) Enqueue(ctx context.Context, name, url string) (model.DownloadTask, error) {
	if err := e.dir.EnsureDir(); err != nil {
		return model.DownloadTask{}, fmt.Errorf("failed to prepare content directory: %w", err)
	}

	id, err := e.manager.Enqueue(ctx, Request{URL: url, Destination: e.dir.Path(name)})
	if err != nil {
		return model.DownloadTask{}, fmt.Errorf("failed to enqueue %s: %w", name, err)
	}

	return model.DownloadTask{ID: id, DestinationName: name, URL: url}, nil
}

// EnqueueBundle enqueues every asset in order. It stops at the first error and
// returns the tasks enqueued so far; those are left running.
func (e *Enqueuer) EnqueueBundle(ctx context.Context, assets []content.Asset) ([]model.DownloadTask, error) {
	logger := logctx.LoggerFromContext(ctx)

	tasks := make([]model.DownloadTask, 0, len(assets))
	for _, asset := range assets {
		task, err := e.Enqueue(ctx, asset.Name, asset.URL)
		if err != nil {
			logger.Error("failed to enqueue asset", "name", asset.Name, "err", err)
			return tasks, err
		}
		tasks = append(tasks, task)
	}

	logger.Info("bundle enqueued", "tasks", len(tasks))

	return tasks, nil
}
