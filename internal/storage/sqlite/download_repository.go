package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/kalite-mobile/internal/storage"
)

// DownloadRepository implements storage.DownloadReadRepository and
// storage.DownloadWriteRepository on top of SQLite.
type DownloadRepository struct {
	db *sql.DB
}

func NewDownloadRepository(dbConn *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: dbConn}
}

// Create inserts a new record and returns its id.
func (r *DownloadRepository) Create(url, destination string, status int) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := r.db.Exec(
		`INSERT INTO downloads (url, destination, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		url, destination, status, now, now,
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// UpdateStatus sets the status and reason for a download.
func (r *DownloadRepository) UpdateStatus(id int64, status int, reason string) error {
	res, err := r.db.Exec(
		`UPDATE downloads SET status = ?, reason = ?, updated_at = ? WHERE id = ?`,
		status, reason, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res, id)
}

// UpdateProgress sets the byte counters for a download.
func (r *DownloadRepository) UpdateProgress(id int64, downloaded, total int64) error {
	res, err := r.db.Exec(
		`UPDATE downloads SET bytes_downloaded = ?, total_bytes = ?, updated_at = ? WHERE id = ?`,
		downloaded, total, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res, id)
}

// GetByIDs returns the records matching ids. Unknown ids are skipped.
func (r *DownloadRepository) GetByIDs(ids ...int64) ([]storage.DownloadRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(
		`SELECT id, url, destination, bytes_downloaded, total_bytes, status, reason, created_at, updated_at
		FROM downloads WHERE id IN (`+placeholders+`) ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []storage.DownloadRecord

	for rows.Next() {
		var (
			record               storage.DownloadRecord
			createdAt, updatedAt string
		)

		err := rows.Scan(&record.ID, &record.URL, &record.Destination, &record.BytesDownloaded,
			&record.TotalBytes, &record.Status, &record.Reason, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		record.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		record.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

		records = append(records, record)
	}

	return records, rows.Err()
}

func expectOneRow(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("download %d: %w", id, storage.ErrNotFound)
	}

	return nil
}
