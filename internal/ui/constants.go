package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconBrowse   = "📖"
	IconPlay     = "▶"
	IconDelete   = "🗑️"
	IconClose    = "×"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48

	PosterMinWidth  float32 = 240
	PosterMinHeight float32 = 135

	ProgressPopupWidth float32 = 360
	RowMinWidth        float32 = 320
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 64
	ToastMargin   float32 = 20
	ToastAutoHide         = 3 * time.Second
)
