package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/semaphore"

	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/platform"
	"github.com/ytget/kalite-mobile/internal/storage"
	"github.com/ytget/kalite-mobile/internal/telemetry"
)

// Default service settings
const (
	DefaultMaxParallel      = 3
	DefaultMaxAttempts      = 5
	DefaultRetryBackoff     = 5 * time.Second
	DefaultProgressInterval = 256 * 1024 // bytes between status store updates
	partSuffix              = ".part"
)

// errRangeRejected is returned when the server refuses to resume a partial
// file. The part file is dropped so the next attempt starts over.
var errRangeRejected = errors.New("server rejected resume range")

// Repository is the status store used by the service.
type Repository interface {
	storage.DownloadReadRepository
	storage.DownloadWriteRepository
}

// StatusError is returned when the remote server answers with an error status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}

// Temporary reports whether the request may succeed when retried.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

// Service handles download operations
type Service struct {
	repo             Repository
	client           *http.Client
	telemetry        *telemetry.Telemetry
	sem              *semaphore.Weighted
	maxAttempts      int
	backoff          time.Duration
	progressInterval int64

	ctx    context.Context // parent of every transfer, cancelled by Close
	cancel context.CancelFunc

	mu     sync.Mutex // guards closed and wg.Add against Close
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient sets the client used for transfers.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithTelemetry records transfer metrics.
func WithTelemetry(t *telemetry.Telemetry) Option {
	return func(s *Service) { s.telemetry = t }
}

// WithMaxParallel bounds the number of concurrent transfers.
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithMaxAttempts sets how many times a transfer is tried before it fails.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryBackoff sets the delay between attempts.
func WithRetryBackoff(d time.Duration) Option {
	return func(s *Service) { s.backoff = d }
}

// WithProgressInterval sets how many bytes are read between progress writes.
func WithProgressInterval(bytes int64) Option {
	return func(s *Service) {
		if bytes > 0 {
			s.progressInterval = bytes
		}
	}
}

// NewService creates a new download service. The logger of ctx is used by
// background transfers.
func NewService(ctx context.Context, repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		client:           http.DefaultClient,
		sem:              semaphore.NewWeighted(DefaultMaxParallel),
		maxAttempts:      DefaultMaxAttempts,
		backoff:          DefaultRetryBackoff,
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(logctx.WithLogger(context.Background(), logctx.LoggerFromContext(ctx)))

	return s
}

// Enqueue records a pending download and starts it in the background.
func (s *Service) Enqueue(ctx context.Context, req Request) (int64, error) {
	if err := validateURL(req.URL); err != nil {
		return 0, err
	}

	if strings.TrimSpace(req.Destination) == "" {
		return 0, ErrInvalidDestination
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	id, err := s.repo.Create(req.URL, req.Destination, StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to record download: %w", err)
	}

	logctx.LoggerFromContext(ctx).Info("download enqueued", "download_id", id, "url", req.URL, "destination", req.Destination)

	s.wg.Add(1)
	go s.run(id, req)

	return id, nil
}

// Query returns the status rows of the given ids.
func (s *Service) Query(ctx context.Context, ids ...int64) ([]StatusRow, error) {
	records, err := s.repo.GetByIDs(ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}

	rows := make([]StatusRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, StatusRow{
			ID:              r.ID,
			BytesDownloaded: r.BytesDownloaded,
			TotalBytes:      r.TotalBytes,
			Status:          r.Status,
		})
	}

	return rows, nil
}

// Status returns the row of a single download.
func (s *Service) Status(ctx context.Context, id int64) (StatusRow, error) {
	rows, err := s.Query(ctx, id)
	if err != nil {
		return StatusRow{}, err
	}
	if len(rows) == 0 {
		return StatusRow{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rows[0], nil
}

// Close cancels in-flight transfers and waits for them to stop.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to wait for transfers: %w", ctx.Err())
	}
}

func (s *Service) run(id int64, req Request) {
	defer s.wg.Done()

	ctx := s.ctx
	logger := logctx.LoggerFromContext(ctx).With("download_id", id)

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.setStatus(id, StatusPaused, "service closed")
		return
	}
	defer s.sem.Release(1)

	s.telemetry.IncrementActiveDownloads()
	defer s.telemetry.DecrementActiveDownloads()

	started := time.Now()
	progress := &progressFloor{repo: s.repo, id: id}
	part := partPath(req.Destination, id)

	for attempt := 1; ; attempt++ {
		s.setStatus(id, StatusRunning, "")

		err := s.transfer(ctx, req, part, progress)
		if err == nil {
			s.setStatus(id, StatusSuccessful, "")
			s.telemetry.RecordDownload(StatusName(StatusSuccessful), time.Since(started))
			logger.Info("download completed", "destination", req.Destination, "duration", time.Since(started))
			return
		}

		if ctx.Err() != nil {
			os.Remove(part)
			s.setStatus(id, StatusPaused, "service closed")
			return
		}

		if !isTemporary(err) || attempt >= s.maxAttempts {
			os.Remove(part)
			s.setStatus(id, StatusFailed, err.Error())
			s.telemetry.RecordDownload(StatusName(StatusFailed), time.Since(started))
			logger.Error("download failed", "attempt", attempt, "err", err)
			return
		}

		logger.Warn("download attempt failed, retrying", "attempt", attempt, "backoff", s.backoff, "err", err)
		s.setStatus(id, StatusPaused, err.Error())

		select {
		case <-time.After(s.backoff):
		case <-ctx.Done():
			os.Remove(part)
			return
		}
	}
}

// transfer fetches req into part and moves it to the destination. A part
// file left by an earlier attempt is resumed with a range request when the
// server supports it.
func (s *Service) transfer(ctx context.Context, req Request, part string, progress *progressFloor) error {
	logger := logctx.LoggerFromContext(ctx).With("download_id", progress.id)

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(req.Destination)); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	var offset int64
	if info, err := os.Stat(part); err == nil {
		offset = info.Size()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if offset > 0 {
		httpReq.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusRequestedRangeNotSatisfiable && offset > 0:
		os.Remove(part)
		return errRangeRejected
	case resp.StatusCode >= http.StatusBadRequest:
		return &StatusError{Code: resp.StatusCode}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if resp.StatusCode != http.StatusPartialContent {
		// Full body, the part file starts over.
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		offset = 0
	}

	total := responseTotal(resp, offset)

	if err := progress.record(offset, total); err != nil {
		logger.Error("failed to record progress", "err", err)
	}

	out, err := os.OpenFile(part, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}

	if total > 0 {
		logger.Info("downloading file", "file_path", req.Destination,
			"file_size", humanize.Bytes(uint64(total)), "resume_from", offset)
	}

	pr := newProgressReader(resp.Body, total, s.progressInterval, func(written, total int64) {
		if err := progress.record(offset+written, total); err != nil {
			logger.Error("failed to record progress", "err", err)
		}
	})

	// The part file is kept on copy errors so the next attempt can resume.
	if _, err := io.Copy(out, pr); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(part, req.Destination); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	// The size of chunked responses is only known once the body is read.
	if total < 0 {
		size := offset + pr.Written()
		if err := progress.record(size, size); err != nil {
			logger.Error("failed to record progress", "err", err)
		}
	}

	return nil
}

func (s *Service) setStatus(id int64, status int, reason string) {
	if err := s.repo.UpdateStatus(id, status, reason); err != nil {
		logctx.LoggerFromContext(s.ctx).Error("failed to update download status",
			"download_id", id, "status", StatusName(status), "err", err)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return nil
}

// isTemporary reports whether err is worth another attempt: server-side http
// errors and transport failures are, client errors are not.
func isTemporary(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// progressFloor writes byte counters of one download and never lets the
// recorded count go below what was already stored, even when an attempt
// has to restart from zero.
type progressFloor struct {
	repo Repository
	id   int64
	last int64
}

func (p *progressFloor) record(downloaded, total int64) error {
	if downloaded < p.last {
		downloaded = p.last
	}
	p.last = downloaded
	return p.repo.UpdateProgress(p.id, downloaded, total)
}

// partPath is the temporary file of download id, stable across attempts.
func partPath(destination string, id int64) string {
	return destination + "." + strconv.FormatInt(id, 10) + partSuffix
}

// responseTotal returns the full size of the resource, or -1 when unknown.
func responseTotal(resp *http.Response, offset int64) int64 {
	if resp.StatusCode == http.StatusPartialContent {
		// Content-Range: bytes 40-63/64
		if cr := resp.Header.Get("Content-Range"); cr != "" {
			if i := strings.LastIndex(cr, "/"); i >= 0 {
				if n, err := strconv.ParseInt(cr[i+1:], 10, 64); err == nil {
					return n
				}
			}
		}
		if resp.ContentLength >= 0 {
			return offset + resp.ContentLength
		}
		return -1
	}

	if resp.ContentLength < 0 {
		return -1
	}
	return resp.ContentLength
}
