package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a download record does not exist.
var ErrNotFound = errors.New("download record not found")

// DownloadRecord is one row of the download-status store.
type DownloadRecord struct {
	ID              int64
	URL             string
	Destination     string
	BytesDownloaded int64
	TotalBytes      int64 // -1 while the size is unknown
	Status          int
	Reason          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DownloadReadRepository reads download records.
type DownloadReadRepository interface {
	GetByIDs(ids ...int64) ([]DownloadRecord, error)
}

// DownloadWriteRepository creates and updates download records.
type DownloadWriteRepository interface {
	Create(url, destination string, status int) (int64, error)
	UpdateStatus(id int64, status int, reason string) error
	UpdateProgress(id int64, downloaded, total int64) error
}
