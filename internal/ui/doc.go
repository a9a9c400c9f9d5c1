package ui

// Package ui contains the Fyne user interface of the application: a single
// screen with browse, watch and delete actions, the download confirmation
// dialog, the progress popup driven by the download watcher, toasts and the
// settings dialog. All UI strings are localized via Localization.
