package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/kalite-mobile/internal/config"
	"github.com/ytget/kalite-mobile/internal/content"
	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/model"
	"github.com/ytget/kalite-mobile/internal/platform"
	"github.com/ytget/kalite-mobile/internal/progress"
	"github.com/ytget/kalite-mobile/internal/server"
	"github.com/ytget/kalite-mobile/internal/telemetry"
)

// BundleEnqueuer submits the content bundle for download
type BundleEnqueuer interface {
	EnqueueBundle(ctx context.Context, assets []content.Asset) ([]model.DownloadTask, error)
}

// ExerciseServer is the local exercise file server
type ExerciseServer interface {
	Start(ctx context.Context) error
	PageURL(page string) string
}

// VideoOpener opens a local video URI in the platform player
type VideoOpener func(uri, mimeType string) error

// Options holds the collaborators of the main screen
type Options struct {
	Store        *content.Store
	Enqueuer     BundleEnqueuer
	Poller       progress.Poller
	Server       ExerciseServer
	PollInterval time.Duration
	Telemetry    *telemetry.Telemetry

	// Optional; default to the platform player and main-thread timers.
	OpenVideo VideoOpener
	Scheduler progress.Scheduler
}

// RootUI represents the main screen
type RootUI struct {
	ctx          context.Context
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI

	store     *content.Store
	enqueuer  BundleEnqueuer
	server    ExerciseServer
	openVideo VideoOpener
	watcher   *progress.Watcher

	progressPopup *ProgressPopup

	titleLabel        *widget.Label
	availabilityLabel *widget.Label
	poster            *canvas.Image
	browseBtn         *widget.Button
	watchBtn          *widget.Button
	deleteBtn         *widget.Button

	lastToast string
}

// NewRootUI creates the main screen and sets it as the window content. ctx
// carries the logger and is cancelled when the application stops.
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, opts Options) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		store:        opts.Store,
		enqueuer:     opts.Enqueuer,
		server:       opts.Server,
		openVideo:    opts.OpenVideo,
	}

	if ui.openVideo == nil {
		ui.openVideo = platform.OpenVideo
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = progress.TimerScheduler{Dispatch: fyne.Do}
	}

	ui.watcher = progress.NewWatcher(opts.Poller, scheduler, ui, opts.Store,
		progress.WithInterval(opts.PollInterval),
		progress.WithOnCompleted(ui.onDownloadsCompleted),
		progress.WithTelemetry(opts.Telemetry),
	)

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetContent(ui.createContent())
	ui.refreshAvailability()

	return ui
}

func (ui *RootUI) createContent() fyne.CanvasObject {
	ui.titleLabel = widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil, settingsBtn, ui.titleLabel)

	ui.availabilityLabel = widget.NewLabel("")
	ui.availabilityLabel.Alignment = fyne.TextAlignCenter

	ui.poster = canvas.NewImageFromFile("")
	ui.poster.FillMode = canvas.ImageFillContain
	ui.poster.SetMinSize(fyne.NewSize(PosterMinWidth, PosterMinHeight))
	ui.poster.Hide()

	var browse, watch, del fyne.CanvasObject
	ui.browseBtn, browse = ui.mobile.CreateMobileButton("", ui.onBrowse)
	ui.watchBtn, watch = ui.mobile.CreateMobileButton("", ui.onWatch)
	ui.deleteBtn, del = ui.mobile.CreateMobileButton("", ui.onDelete)
	ui.watchBtn.Importance = widget.HighImportance
	ui.deleteBtn.Importance = widget.DangerImportance
	ui.refreshTexts()

	return container.NewBorder(
		header,
		ui.mobile.CreateActionLayout(browse, watch, del),
		nil, nil,
		container.NewVBox(ui.availabilityLabel, container.NewCenter(ui.poster)),
	)
}

func (ui *RootUI) refreshTexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.SetText(ui.localization.GetText(KeyAppTitle))
	ui.browseBtn.SetText(IconBrowse + " " + ui.localization.GetText(KeyBrowse))
	ui.watchBtn.SetText(IconPlay + " " + ui.localization.GetText(KeyWatch))
	ui.deleteBtn.SetText(IconDelete + " " + ui.localization.GetText(KeyDelete))
	if ui.availabilityLabel != nil && ui.store != nil {
		ui.refreshAvailability()
	}
}

// refreshAvailability updates the availability line and the poster
func (ui *RootUI) refreshAvailability() {
	if !ui.store.VideoAvailable() {
		ui.availabilityLabel.SetText(ui.localization.GetText(KeyVideoMissing))
		ui.poster.File = ""
		ui.poster.Hide()
		return
	}

	ui.availabilityLabel.SetText(ui.localization.GetText(KeyVideoAvailable))
	if ui.store.Exists(content.PosterName) {
		ui.poster.File = ui.store.Path(content.PosterName)
		ui.poster.Show()
		ui.poster.Refresh()
	}
}

// onBrowse starts the exercise server and opens its first page
func (ui *RootUI) onBrowse() {
	logger := logctx.LoggerFromContext(ui.ctx)

	if err := ui.server.Start(ui.ctx); err != nil {
		logger.Error("failed to start exercise server", "err", err)
		ui.showToast(ui.localization.GetText(KeyErrorStartingServer) + ": " + err.Error())
		return
	}

	pageURL := ui.server.PageURL(server.ExercisePage)
	u, err := url.Parse(pageURL)
	if err == nil {
		err = ui.app.OpenURL(u)
	}
	if err != nil {
		logger.Error("failed to open browser", "url", pageURL, "err", err)
		ui.showToast(ui.localization.GetText(KeyErrorOpeningBrowser))
	}
}

// onWatch plays the video when it is available, otherwise offers to download it
func (ui *RootUI) onWatch() {
	if ui.store.VideoAvailable() {
		ui.playVideo()
		return
	}

	if ui.watcher.State() == progress.StatePolling {
		ui.showToast(ui.localization.GetText(KeyDownloadInProgress))
		return
	}

	ui.confirmDownload(ui.onDownloadConfirmed)
}

func (ui *RootUI) playVideo() {
	if err := ui.openVideo(ui.store.URI(content.VideoName), content.VideoMimeType); err != nil {
		logctx.LoggerFromContext(ui.ctx).Error("failed to open video", "err", err)
		ui.showToast(ui.localization.GetText(KeyErrorOpeningVideo))
	}
}

// confirmDownload asks whether to download the bundle and passes the answer to onAnswer
func (ui *RootUI) confirmDownload(onAnswer func(confirmed bool)) {
	prompt := widget.NewLabel(ui.localization.GetText(KeyDownloadPrompt))
	prompt.Wrapping = fyne.TextWrapWord
	body := container.NewVBox(prompt)

	if free, err := ui.store.FreeSpace(); err == nil {
		body.Add(widget.NewLabel(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyFreeSpace), humanize.Bytes(free))))
	}

	dialog.NewCustomConfirm(
		ui.localization.GetText(KeyVideoNotAvailable),
		ui.localization.GetText(KeyYes),
		ui.localization.GetText(KeyNo),
		body,
		onAnswer,
		ui.window,
	).Show()
}

func (ui *RootUI) onDownloadConfirmed(confirmed bool) {
	if !confirmed {
		return
	}

	logger := logctx.LoggerFromContext(ui.ctx)

	tasks, err := ui.enqueuer.EnqueueBundle(ui.ctx, content.DefaultBundle())
	if err != nil {
		logger.Error("failed to enqueue downloads", "enqueued", len(tasks), "err", err)
		ui.showToast(ui.localization.GetText(KeyDownloadFailed) + ": " + err.Error())
		return
	}

	ui.progressPopup = NewProgressPopup(tasks, ui.localization, ui.window.Canvas())
	ui.progressPopup.Show()

	if err := ui.watcher.Start(ui.ctx, tasks); err != nil {
		if errors.Is(err, progress.ErrAlreadyWatching) {
			ui.showToast(ui.localization.GetText(KeyDownloadInProgress))
		}
		logger.Error("failed to watch downloads", "err", err)
		ui.progressPopup.Hide()
		ui.progressPopup = nil
	}
}

// Publish renders a fresh aggregate in the progress popup
func (ui *RootUI) Publish(agg model.Aggregate) {
	if ui.progressPopup != nil {
		ui.progressPopup.Update(agg)
	}
}

// Finished dismisses the progress popup and shows the video as available
func (ui *RootUI) Finished() {
	if ui.progressPopup != nil {
		ui.progressPopup.Hide()
		ui.progressPopup = nil
	}
	ui.refreshAvailability()
}

func (ui *RootUI) onDownloadsCompleted() {
	if ui.settings.GetAutoPlayOnComplete() {
		ui.onWatch()
		return
	}
	ui.showToast(ui.localization.GetText(KeyDownloadCompleted))
}

// onDelete removes every downloaded file, including the completion marker
func (ui *RootUI) onDelete() {
	removed, err := ui.store.DeleteAll()
	if err != nil {
		logctx.LoggerFromContext(ui.ctx).Error("failed to delete content", "removed", removed, "err", err)
		ui.showToast(ui.localization.GetText(KeyErrorDeleting))
		ui.refreshAvailability()
		return
	}

	if removed == 0 {
		ui.showToast(ui.localization.GetText(KeyVideoDoesNotExist))
		return
	}

	logctx.LoggerFromContext(ui.ctx).Info("content deleted", "files", removed)
	ui.showToast(ui.localization.GetText(KeyVideoDeleted))
	ui.refreshAvailability()
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshTexts()
		ui.showToast(ui.localization.GetText(KeySettingsSaved))
	}).Show()
}
