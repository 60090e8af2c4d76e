package preferences

import (
	"apneatimer/internal/core/discipline"
)

// Volume bounds accepted from the UI and the settings file.
const (
	MinVolume = 0.1
	MaxVolume = 1.0
)

// LogLevels lists the selectable log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Settings defines editable user preferences.
type Settings struct {
	Discipline           discipline.Code
	SoundEnabled         bool
	MasterVolume         float64
	NotificationsEnabled bool

	LogLevel    string
	MetricsAddr string
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		Discipline:           discipline.Static,
		SoundEnabled:         true,
		MasterVolume:         1.0,
		NotificationsEnabled: true,
		LogLevel:             "info",
		MetricsAddr:          "",
	}
}

// ValidLogLevel reports whether level is one of LogLevels.
func ValidLogLevel(level string) bool {
	for _, candidate := range LogLevels {
		if candidate == level {
			return true
		}
	}
	return false
}

// ValidVolume reports whether volume is inside the accepted range.
func ValidVolume(volume float64) bool {
	return volume >= MinVolume && volume <= MaxVolume
}
