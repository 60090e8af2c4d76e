package preferences

import (
	"testing"

	"apneatimer/internal/core/discipline"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, discipline.Static, settings.Discipline)
	assert.True(t, settings.SoundEnabled)
	assert.True(t, settings.NotificationsEnabled)
	assert.True(t, ValidVolume(settings.MasterVolume))
	assert.True(t, ValidLogLevel(settings.LogLevel))
	assert.Empty(t, settings.MetricsAddr)
}

func TestValidators(t *testing.T) {
	assert.False(t, ValidVolume(0))
	assert.False(t, ValidVolume(1.5))
	assert.True(t, ValidVolume(0.5))
	assert.False(t, ValidLogLevel("trace"))
	assert.True(t, ValidLogLevel("warn"))
}
