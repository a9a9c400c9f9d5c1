package model

import "strings"

// DownloadState represents the state of a single download as reported by the
// download service.
type DownloadState string

const (
	// StatePending means the download is queued but not started
	StatePending DownloadState = "pending"

	// StateRunning means bytes are being transferred
	StateRunning DownloadState = "running"

	// StatePaused means the transfer is waiting to retry or resume
	StatePaused DownloadState = "paused"

	// StateFailed means the download service gave up on the transfer
	StateFailed DownloadState = "failed"

	// StateSuccessful means the file is fully stored at its destination
	StateSuccessful DownloadState = "successful"

	// StateUnknown is used when no status is available for a download
	StateUnknown DownloadState = ""
)

// String returns the string representation of DownloadState
func (s DownloadState) String() string {
	return string(s)
}

// Title returns the state with its first letter capitalized, as shown in
// progress rows. The unknown state renders as an empty string.
func (s DownloadState) Title() string {
	if s == StateUnknown {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// IsFinished returns true if the download service will not change the state anymore
func (s DownloadState) IsFinished() bool {
	return s == StateSuccessful || s == StateFailed
}

// IsActive returns true if the transfer is queued, running or waiting to retry
func (s DownloadState) IsActive() bool {
	return s == StatePending || s == StateRunning || s == StatePaused
}
