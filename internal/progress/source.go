package progress

import (
	"context"
	"fmt"

	"github.com/ytget/kalite-mobile/internal/download"
	"github.com/ytget/kalite-mobile/internal/model"
)

// Querier reads status rows from the download service.
type Querier interface {
	Query(ctx context.Context, ids ...int64) ([]download.StatusRow, error)
}

// StateFromStatus maps a download status code to a state. Unrecognised codes
// map to the unknown state.
func StateFromStatus(status int) model.DownloadState {
	switch status {
	case download.StatusPending:
		return model.StatePending
	case download.StatusRunning:
		return model.StateRunning
	case download.StatusPaused:
		return model.StatePaused
	case download.StatusFailed:
		return model.StateFailed
	case download.StatusSuccessful:
		return model.StateSuccessful
	default:
		return model.StateUnknown
	}
}

// SnapshotFromRow converts a raw status row.
func SnapshotFromRow(row download.StatusRow) model.Snapshot {
	return model.NewSnapshot(row.BytesDownloaded, row.TotalBytes, StateFromStatus(row.Status))
}

// Source polls the download service for a fixed set of ids.
type Source struct {
	querier Querier
}

func NewSource(querier Querier) *Source {
	return &Source{querier: querier}
}

// Poll issues one query and returns a snapshot for every id. Ids without a row
// keep the unknown snapshot. On a query error every id is unknown and the
// error is returned alongside the aggregate.
func (s *Source) Poll(ctx context.Context, ids []int64) (model.Aggregate, error) {
	agg := model.NewAggregate(ids)

	rows, err := s.querier.Query(ctx, ids...)
	if err != nil {
		return agg, fmt.Errorf("failed to query download status: %w", err)
	}

	for _, row := range rows {
		if _, tracked := agg[row.ID]; tracked {
			agg[row.ID] = SnapshotFromRow(row)
		}
	}

	return agg, nil
}
