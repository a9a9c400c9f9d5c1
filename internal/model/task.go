package model

// DownloadTask identifies one in-flight or completed transfer
type DownloadTask struct {
	ID              int64  // assigned by the download service at enqueue time
	DestinationName string // local file name inside the content directory
	URL             string // source URL
}

// IDs returns the ids of the given tasks in order
func IDs(tasks []DownloadTask) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
