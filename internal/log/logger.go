// Package log provides the process-wide zerolog logger.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Service string    // optional service name attached to every log entry
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the global logger. Level falls back to LOG_LEVEL and
// then to info. The level is process-wide so that SetLevel also reaches
// component loggers derived earlier.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if parsed, ok := parseLevel(cfg.Level); ok {
		level = parsed
	} else if parsed, ok := parseLevel(os.Getenv("LOG_LEVEL")); ok {
		level = parsed
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	service := cfg.Service
	if service == "" {
		service = "apneatimer"
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(writer).With().
		Timestamp().
		Str("service", service).
		Logger()

	mu.Lock()
	base = logger
	mu.Unlock()
}

// SetLevel changes the process-wide level. It reports false for an
// unknown level and leaves the current one in place.
func SetLevel(value string) bool {
	level, ok := parseLevel(value)
	if !ok {
		return false
	}
	zerolog.SetGlobalLevel(level)
	return true
}

// Base returns the configured base logger. Before Configure it discards
// everything.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

func parseLevel(value string) (zerolog.Level, bool) {
	if value == "" {
		return zerolog.NoLevel, false
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.NoLevel, false
	}
	return level, true
}
