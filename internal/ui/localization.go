package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyBrowse              = "browse"
	KeyWatch               = "watch"
	KeyDelete              = "delete"
	KeySettings            = "settings"
	KeyLanguage            = "language"
	KeyAutoPlay            = "auto_play"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyYes                 = "yes"
	KeyNo                  = "no"
	KeySettingsSaved       = "settings_saved"
	KeyVideoNotAvailable   = "video_not_available"
	KeyDownloadPrompt      = "download_prompt"
	KeyFreeSpace           = "free_space"
	KeyDownloadProgress    = "download_progress"
	KeyTotal               = "total"
	KeyDownloadCompleted   = "download_completed"
	KeyDownloadFailed      = "download_failed"
	KeyDownloadInProgress  = "download_in_progress"
	KeyVideoDeleted        = "video_deleted"
	KeyVideoDoesNotExist   = "video_does_not_exist"
	KeyVideoAvailable      = "video_available"
	KeyVideoMissing        = "video_missing"
	KeyErrorDeleting       = "error_deleting"
	KeyErrorOpeningVideo   = "error_opening_video"
	KeyErrorOpeningBrowser = "error_opening_browser"
	KeyErrorStartingServer = "error_starting_server"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "KA Lite",
		KeyBrowse:              "Browse exercises",
		KeyWatch:               "Watch video",
		KeyDelete:              "Delete video",
		KeySettings:            "Settings",
		KeyLanguage:            "Language",
		KeyAutoPlay:            "Play video when the download finishes",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyYes:                 "Yes",
		KeyNo:                  "No",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyVideoNotAvailable:   "Video is not available",
		KeyDownloadPrompt:      "Download exercise video and subtitles?",
		KeyFreeSpace:           "Free space",
		KeyDownloadProgress:    "Downloading",
		KeyTotal:               "Total",
		KeyDownloadCompleted:   "Download completed",
		KeyDownloadFailed:      "Download failed",
		KeyDownloadInProgress:  "Download already in progress",
		KeyVideoDeleted:        "Video deleted successfully",
		KeyVideoDoesNotExist:   "Video does not exist",
		KeyVideoAvailable:      "Video is ready to watch",
		KeyVideoMissing:        "Video is not downloaded yet",
		KeyErrorDeleting:       "Error deleting video",
		KeyErrorOpeningVideo:   "Error opening video",
		KeyErrorOpeningBrowser: "Error opening browser",
		KeyErrorStartingServer: "Error starting exercise server",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "KA Lite",
		KeyBrowse:              "Упражнения",
		KeyWatch:               "Смотреть видео",
		KeyDelete:              "Удалить видео",
		KeySettings:            "Настройки",
		KeyLanguage:            "Язык",
		KeyAutoPlay:            "Воспроизвести видео после загрузки",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyYes:                 "Да",
		KeyNo:                  "Нет",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyVideoNotAvailable:   "Видео недоступно",
		KeyDownloadPrompt:      "Скачать видео и субтитры к упражнению?",
		KeyFreeSpace:           "Свободно",
		KeyDownloadProgress:    "Загрузка",
		KeyTotal:               "Всего",
		KeyDownloadCompleted:   "Загрузка завершена",
		KeyDownloadFailed:      "Ошибка загрузки",
		KeyDownloadInProgress:  "Загрузка уже идёт",
		KeyVideoDeleted:        "Видео удалено",
		KeyVideoDoesNotExist:   "Видео не найдено",
		KeyVideoAvailable:      "Видео готово к просмотру",
		KeyVideoMissing:        "Видео ещё не загружено",
		KeyErrorDeleting:       "Ошибка удаления видео",
		KeyErrorOpeningVideo:   "Ошибка открытия видео",
		KeyErrorOpeningBrowser: "Ошибка открытия браузера",
		KeyErrorStartingServer: "Ошибка запуска сервера упражнений",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "KA Lite",
		KeyBrowse:              "Exercícios",
		KeyWatch:               "Assistir vídeo",
		KeyDelete:              "Excluir vídeo",
		KeySettings:            "Configurações",
		KeyLanguage:            "Idioma",
		KeyAutoPlay:            "Reproduzir vídeo ao terminar o download",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeyYes:                 "Sim",
		KeyNo:                  "Não",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
		KeyVideoNotAvailable:   "Vídeo não disponível",
		KeyDownloadPrompt:      "Baixar vídeo e legendas do exercício?",
		KeyFreeSpace:           "Espaço livre",
		KeyDownloadProgress:    "Baixando",
		KeyTotal:               "Total",
		KeyDownloadCompleted:   "Download concluído",
		KeyDownloadFailed:      "Falha no download",
		KeyDownloadInProgress:  "Download já em andamento",
		KeyVideoDeleted:        "Vídeo excluído com sucesso",
		KeyVideoDoesNotExist:   "Vídeo não existe",
		KeyVideoAvailable:      "Vídeo pronto para assistir",
		KeyVideoMissing:        "Vídeo ainda não baixado",
		KeyErrorDeleting:       "Erro ao excluir vídeo",
		KeyErrorOpeningVideo:   "Erro ao abrir vídeo",
		KeyErrorOpeningBrowser: "Erro ao abrir navegador",
		KeyErrorStartingServer: "Erro ao iniciar servidor de exercícios",
	}
}
