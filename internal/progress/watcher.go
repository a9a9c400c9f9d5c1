package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/model"
	"github.com/ytget/kalite-mobile/internal/telemetry"
)

// DefaultInterval is the delay between two polls.
const DefaultInterval = 2 * time.Second

// ErrAlreadyWatching is returned by Start while a batch is still being polled.
var ErrAlreadyWatching = errors.New("a download batch is already being watched")

// Poller pulls one aggregate for the given ids.
type Poller interface {
	Poll(ctx context.Context, ids []int64) (model.Aggregate, error)
}

// Sink receives progress updates.
type Sink interface {
	Publish(agg model.Aggregate)
	// Finished is called once when every download has succeeded.
	Finished()
}

// Marker records that the content is available.
type Marker interface {
	MarkCompleted() error
}

// State of a Watcher.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Watcher polls a batch of downloads until all of them succeed, publishing
// every aggregate to its sink.
type Watcher struct {
	poller      Poller
	scheduler   Scheduler
	sink        Sink
	marker      Marker
	interval    time.Duration
	onCompleted func()
	telemetry   *telemetry.Telemetry

	mu      sync.Mutex
	state   State
	ids     []int64
	current model.Aggregate
	stalled bool // every download settled with failures, already logged
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithOnCompleted sets a callback invoked once per completed batch.
func WithOnCompleted(f func()) Option {
	return func(w *Watcher) { w.onCompleted = f }
}

// WithTelemetry records poll metrics.
func WithTelemetry(t *telemetry.Telemetry) Option {
	return func(w *Watcher) { w.telemetry = t }
}

func NewWatcher(poller Poller, scheduler Scheduler, sink Sink, marker Marker, opts ...Option) *Watcher {
	w := &Watcher{
		poller:    poller,
		scheduler: scheduler,
		sink:      sink,
		marker:    marker,
		interval:  DefaultInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching tasks. The first poll runs before Start returns; later
// polls are armed on the scheduler. Cancelling ctx stops further polls.
func (w *Watcher) Start(ctx context.Context, tasks []model.DownloadTask) error {
	w.mu.Lock()
	if w.state == StatePolling {
		w.mu.Unlock()
		return ErrAlreadyWatching
	}
	w.state = StatePolling
	w.ids = model.IDs(tasks)
	w.current = model.NewAggregate(w.ids)
	w.stalled = false
	w.mu.Unlock()

	logctx.LoggerFromContext(ctx).Info("watching downloads", "ids", w.ids, "interval", w.interval)

	w.tick(ctx)

	return nil
}

// State returns the current state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Current returns the most recently published aggregate.
func (w *Watcher) Current() model.Aggregate {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Watcher) tick(ctx context.Context) {
	logger := logctx.LoggerFromContext(ctx)

	if ctx.Err() != nil {
		logger.Info("stopped watching downloads", "err", ctx.Err())
		w.setState(StateIdle)
		return
	}

	w.mu.Lock()
	ids := w.ids
	w.mu.Unlock()

	agg, err := w.poller.Poll(ctx, ids)
	if err != nil {
		logger.Warn("failed to poll downloads", "err", err)
		w.telemetry.RecordPoll("error")
	} else {
		w.telemetry.RecordPoll("ok")
	}

	w.mu.Lock()
	w.current = agg
	w.mu.Unlock()

	w.sink.Publish(agg)

	if !agg.Complete() {
		if agg.Settled() {
			if w.markStalled() {
				logger.Warn("downloads finished with failures, still polling", "failed_ids", agg.Failed())
			}
		} else {
			logger.Debug("downloads in progress", "active_ids", agg.Active())
		}
		w.scheduler.AfterFunc(w.interval, func() { w.tick(ctx) })
		return
	}

	w.finish(ctx, len(ids))
}

func (w *Watcher) finish(ctx context.Context, size int) {
	logger := logctx.LoggerFromContext(ctx)

	if err := w.marker.MarkCompleted(); err != nil {
		logger.Error("failed to write completion marker", "err", err)
	}

	w.setState(StateDone)
	w.telemetry.RecordBatchCompleted(size)
	logger.Info("all downloads completed", "count", size)

	w.sink.Finished()

	if w.onCompleted != nil {
		w.onCompleted()
	}
}

// markStalled reports whether the batch became stalled on this call.
func (w *Watcher) markStalled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stalled {
		return false
	}
	w.stalled = true
	return true
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}
