package model

import "fmt"

// Snapshot is a point-in-time status of one download
type Snapshot struct {
	Downloaded int64
	Total      int64
	Percent    int // 0 to 100
	State      DownloadState
}

// NewSnapshot builds a snapshot from raw byte counters. A total that is zero or
// negative means the size is not known yet; the downloaded counter is then
// reported as zero so no misleading percentage is shown.
func NewSnapshot(downloaded, total int64, state DownloadState) Snapshot {
	if total <= 0 {
		return Snapshot{State: state}
	}
	if downloaded < 0 {
		downloaded = 0
	}
	if downloaded > total {
		downloaded = total
	}
	return Snapshot{
		Downloaded: downloaded,
		Total:      total,
		Percent:    int(downloaded * 100 / total),
		State:      state,
	}
}

// Fraction returns progress in the 0.0 to 1.0 range for progress bars
func (s Snapshot) Fraction() float64 {
	return float64(s.Percent) / 100
}

// Describe renders the progress row for the given destination name, e.g.
// "Running download of add_sub.mp4: 250 of 500 (50%)".
func (s Snapshot) Describe(name string) string {
	return fmt.Sprintf("%s download of %s: %d of %d (%d%%)",
		s.State.Title(), name, s.Downloaded, s.Total, s.Percent)
}
