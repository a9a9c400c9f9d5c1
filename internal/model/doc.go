package model

// Package model defines domain data structures used across the app: download
// tasks, per-download progress snapshots, the aggregate progress of a batch and
// the download state vocabulary. Values are plain data, safe to copy and to bind
// directly in the UI.
