package download

import (
	"context"
	"errors"
)

// Status codes of a download row. The values match the platform download
// manager so rows can be interpreted the same way everywhere.
const (
	StatusPending    = 1
	StatusRunning    = 2
	StatusPaused     = 4
	StatusSuccessful = 8
	StatusFailed     = 16
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("invalid download url")
	// ErrInvalidDestination is returned when no destination path is given.
	ErrInvalidDestination = errors.New("invalid download destination")
	// ErrNotFound is returned when a download id is unknown.
	ErrNotFound = errors.New("download not found")
	// ErrClosed is returned by Enqueue after Close.
	ErrClosed = errors.New("download service closed")
)

// Request describes a transfer to enqueue.
type Request struct {
	URL         string
	Destination string // absolute local path
}

// StatusRow is the raw state of one download as reported by the service.
type StatusRow struct {
	ID              int64
	BytesDownloaded int64
	TotalBytes      int64 // -1 while unknown
	Status          int
}

// Manager is the download service contract.
type Manager interface {
	// Enqueue records a pending download and returns its id.
	Enqueue(ctx context.Context, req Request) (int64, error)
	// Query returns the rows of the given ids. Unknown ids are omitted.
	Query(ctx context.Context, ids ...int64) ([]StatusRow, error)
}

// StatusName returns a lowercase name for a status code.
func StatusName(status int) string {
	switch status {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusSuccessful:
		return "successful"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
