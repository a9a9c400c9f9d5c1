package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/kalite-mobile/internal/model"
)

// DownloadRow renders the progress of one download
type DownloadRow struct {
	widget.BaseWidget

	task model.DownloadTask

	statusLabel *widget.Label
	progressBar *widget.ProgressBar
	sizeLabel   *widget.Label
}

// NewDownloadRow creates a row for task in the unknown state
func NewDownloadRow(task model.DownloadTask) *DownloadRow {
	r := &DownloadRow{task: task}
	r.ExtendBaseWidget(r)

	r.statusLabel = widget.NewLabel("")
	r.statusLabel.Wrapping = fyne.TextWrapWord
	r.progressBar = widget.NewProgressBar()
	r.sizeLabel = widget.NewLabel("")
	r.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	r.sizeLabel.Alignment = fyne.TextAlignTrailing

	r.SetSnapshot(model.Snapshot{})
	return r
}

// SetSnapshot updates the row from a fresh snapshot
func (r *DownloadRow) SetSnapshot(s model.Snapshot) {
	r.statusLabel.SetText(s.Describe(r.task.DestinationName))
	r.progressBar.SetValue(s.Fraction())
	r.sizeLabel.SetText(formatSizes(s))
}

// Text returns the status line of the row
func (r *DownloadRow) Text() string {
	return r.statusLabel.Text
}

func (r *DownloadRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVBox(
		r.statusLabel,
		container.NewBorder(nil, nil, nil, r.sizeLabel, r.progressBar),
	))
}

func (r *DownloadRow) MinSize() fyne.Size {
	size := r.BaseWidget.MinSize()
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	return size
}

// formatSizes renders "12 MB / 40 MB", or a placeholder while the size is unknown
func formatSizes(s model.Snapshot) string {
	if s.Total <= 0 {
		return DashPlaceholder
	}
	return fmt.Sprintf("%s / %s", humanize.Bytes(uint64(s.Downloaded)), humanize.Bytes(uint64(s.Total)))
}
