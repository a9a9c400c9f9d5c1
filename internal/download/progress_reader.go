package download

import (
	"errors"
	"io"
)

// progressReader wraps an io.Reader and reports the cumulative byte count via a
// callback every interval bytes and once more at EOF.
type progressReader struct {
	reader         io.Reader
	total          int64
	onProgress     func(written, total int64)
	totalRead      int64
	lastReport     int64 // bytes since last report
	reportInterval int64
	done           bool
}

func newProgressReader(r io.Reader, total, interval int64, cb func(written, total int64)) *progressReader {
	return &progressReader{
		reader:         r,
		total:          total,
		onProgress:     cb,
		reportInterval: interval,
	}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.totalRead += int64(n)
		pr.lastReport += int64(n)
		if pr.lastReport >= pr.reportInterval {
			pr.onProgress(pr.totalRead, pr.total)
			pr.lastReport = 0
		}
	}
	if errors.Is(err, io.EOF) && !pr.done {
		pr.done = true
		if pr.lastReport > 0 {
			pr.onProgress(pr.totalRead, pr.total)
			pr.lastReport = 0
		}
	}
	return n, err
}

// Written returns the number of bytes read so far.
func (pr *progressReader) Written() int64 {
	return pr.totalRead
}
