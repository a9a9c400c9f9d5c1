package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// showToast shows a transient message at the bottom of the window
func (ui *RootUI) showToast(message string) {
	ui.lastToast = message

	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	toast := widget.NewPopUp(container.NewPadded(label), ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	width := ToastWidth
	if canvasSize.Width > 0 && canvasSize.Width-2*ToastMargin < width {
		width = canvasSize.Width - 2*ToastMargin
	}
	toast.Resize(fyne.NewSize(width, ToastHeight))
	toast.Move(fyne.NewPos((canvasSize.Width-width)/2, canvasSize.Height-ToastHeight-ToastMargin))
	toast.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
}
