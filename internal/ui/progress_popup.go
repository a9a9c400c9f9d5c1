package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/kalite-mobile/internal/model"
)

// ProgressPopup shows one DownloadRow per task of a batch
type ProgressPopup struct {
	localization *Localization

	tasks      []model.DownloadTask
	rows       map[int64]*DownloadRow
	totalLabel *widget.Label
	popup      *widget.PopUp
}

// NewProgressPopup builds the popup content for tasks; call Show to display it
func NewProgressPopup(tasks []model.DownloadTask, localization *Localization, c fyne.Canvas) *ProgressPopup {
	p := &ProgressPopup{
		localization: localization,
		tasks:        tasks,
		rows:         make(map[int64]*DownloadRow, len(tasks)),
		totalLabel:   widget.NewLabel(""),
	}

	title := widget.NewLabel(localization.GetText(KeyDownloadProgress))
	title.TextStyle = fyne.TextStyle{Bold: true}

	items := container.NewVBox(title, widget.NewSeparator())
	for _, task := range tasks {
		row := NewDownloadRow(task)
		p.rows[task.ID] = row
		items.Add(row)
	}
	items.Add(widget.NewSeparator())
	items.Add(p.totalLabel)

	p.popup = widget.NewModalPopUp(container.NewPadded(items), c)
	p.popup.Resize(fyne.NewSize(ProgressPopupWidth, items.MinSize().Height))

	return p
}

// Show displays the popup
func (p *ProgressPopup) Show() {
	p.popup.Show()
}

// Hide dismisses the popup
func (p *ProgressPopup) Hide() {
	p.popup.Hide()
}

// Visible reports whether the popup is shown
func (p *ProgressPopup) Visible() bool {
	return p.popup.Visible()
}

// Update refreshes every row from agg; tasks missing from agg show as unknown
func (p *ProgressPopup) Update(agg model.Aggregate) {
	for _, task := range p.tasks {
		p.rows[task.ID].SetSnapshot(agg.Get(task.ID))
	}

	downloaded, total := agg.Totals()
	p.totalLabel.SetText(fmt.Sprintf("%s: %s / %s",
		p.localization.GetText(KeyTotal), humanize.Bytes(uint64(downloaded)), humanize.Bytes(uint64(total))))
}

// Row returns the row of a task
func (p *ProgressPopup) Row(id int64) *DownloadRow {
	return p.rows[id]
}
