package model

import "sort"

// Aggregate maps download ids to their latest snapshot. A fresh Aggregate is
// built on every poll; no history is kept.
type Aggregate map[int64]Snapshot

// NewAggregate returns an aggregate holding the zero snapshot for every id
func NewAggregate(ids []int64) Aggregate {
	a := make(Aggregate, len(ids))
	for _, id := range ids {
		a[id] = Snapshot{}
	}
	return a
}

// Get returns the snapshot for id, or the zero snapshot if id is not tracked
func (a Aggregate) Get(id int64) Snapshot {
	return a[id]
}

// Complete reports whether every tracked download is successful. An empty
// aggregate is complete.
func (a Aggregate) Complete() bool {
	for _, s := range a {
		if s.State != StateSuccessful {
			return false
		}
	}
	return true
}

// Settled reports whether the download service is done with every tracked
// download, successfully or not. Unknown states are not settled.
func (a Aggregate) Settled() bool {
	for _, s := range a {
		if !s.State.IsFinished() {
			return false
		}
	}
	return true
}

// Failed returns the ids of failed downloads in ascending order
func (a Aggregate) Failed() []int64 {
	return a.idsWhere(func(s Snapshot) bool { return s.State == StateFailed })
}

// Active returns the ids of downloads still queued, running or waiting to
// retry, in ascending order
func (a Aggregate) Active() []int64 {
	return a.idsWhere(func(s Snapshot) bool { return s.State.IsActive() })
}

func (a Aggregate) idsWhere(match func(Snapshot) bool) []int64 {
	var ids []int64
	for id, s := range a {
		if match(s) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Totals sums downloaded and total bytes across all downloads
func (a Aggregate) Totals() (downloaded, total int64) {
	for _, s := range a {
		downloaded += s.Downloaded
		total += s.Total
	}
	return downloaded, total
}
