package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage           = "app_language"
	KeyAutoPlayOnComplete = "auto_play_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoPlayOnComplete = true
)

// Settings manages user preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoPlayOnComplete returns whether the video opens once its download finishes
func (s *Settings) GetAutoPlayOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoPlayOnComplete, DefaultAutoPlayOnComplete)
}

// SetAutoPlayOnComplete sets whether the video opens once its download finishes
func (s *Settings) SetAutoPlayOnComplete(autoPlay bool) {
	s.app.Preferences().SetBool(KeyAutoPlayOnComplete, autoPlay)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
