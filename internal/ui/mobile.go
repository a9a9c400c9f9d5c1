package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific layout helpers
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.app.Driver().Device().IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := m.app.Driver().Device().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// CreateMobileButton creates a button with a touch-sized minimum height
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) (*widget.Button, fyne.CanvasObject) {
	btn := widget.NewButton(text, onTapped)
	if !m.IsMobileDevice() {
		return btn, btn
	}

	// A transparent strut keeps the row at least MobileButtonHeight tall.
	strut := canvas.NewRectangle(color.Transparent)
	strut.SetMinSize(fyne.NewSize(MinTouchTargetSize, MobileButtonHeight))
	return btn, container.NewStack(strut, btn)
}

// CreateActionLayout stacks actions vertically in portrait and in a row otherwise
func (m *MobileUI) CreateActionLayout(objects ...fyne.CanvasObject) *fyne.Container {
	if m.IsMobileDevice() && !m.IsLandscape() {
		return container.NewVBox(objects...)
	}
	return container.NewGridWithColumns(len(objects), objects...)
}
