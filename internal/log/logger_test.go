package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	logger := WithComponent("session")
	logger.Info().Str("discipline", "DYN").Msg("started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session", entry["component"])
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "DYN", entry["discipline"])
	assert.Equal(t, "started", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestConfigureLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		env     string
		debugOn bool
	}{
		{name: "explicit debug", level: "debug", debugOn: true},
		{name: "explicit warn", level: "warn", debugOn: false},
		{name: "env fallback", env: "debug", debugOn: true},
		{name: "invalid falls back to info", level: "loud", debugOn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			var buf bytes.Buffer
			Configure(Config{Level: tt.level, Output: &buf})

			logger := Base()
			logger.Debug().Msg("debug line")
			assert.Equal(t, tt.debugOn, buf.Len() > 0)
		})
	}
}

func TestSetLevelReachesDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	logger := WithComponent("cue")
	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	require.True(t, SetLevel("debug"))
	logger.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.False(t, SetLevel("loud"))
	buf.Reset()
	logger.Debug().Msg("still shown")
	assert.Contains(t, buf.String(), "still shown")
}
