package cue

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"apneatimer/internal/audio"
	"apneatimer/internal/core/phase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	tones     []string
	announced []string
}

func (rec *recorder) Emit(frequency float64, duration time.Duration, volume float64) error {
	rec.tones = append(rec.tones, fmt.Sprintf("%.0f/%s/%.2f", frequency, duration, volume))
	return nil
}

func (rec *recorder) Announce(message string, severity phase.Severity) error {
	rec.announced = append(rec.announced, string(severity)+":"+message)
	return nil
}

var completedCue = phase.Cue{
	Frequency: 1400,
	Duration:  800 * time.Millisecond,
	Volume:    0.5,
	Announce:  phase.MessageCompleted,
	Severity:  phase.SeveritySuccess,
}

func TestDispatchForwardsToneAndAnnouncement(t *testing.T) {
	rec := &recorder{}
	dispatcher := NewDispatcher(rec, rec, zerolog.Nop())

	dispatcher.Dispatch([]phase.Cue{
		{Frequency: 600, Duration: 150 * time.Millisecond, Volume: 0.3},
		completedCue,
	})

	assert.Equal(t, []string{"600/150ms/0.30", "1400/800ms/0.50"}, rec.tones)
	assert.Equal(t, []string{"success:" + phase.MessageCompleted}, rec.announced)
}

func TestDispatchWithoutAudioStillAnnounces(t *testing.T) {
	rec := &recorder{}
	dispatcher := NewDispatcher(nil, rec, zerolog.Nop())

	dispatcher.Dispatch([]phase.Cue{completedCue})

	assert.Empty(t, rec.tones)
	assert.Equal(t, []string{"success:" + phase.MessageCompleted}, rec.announced)
}

func TestDispatchToleratesToneFailures(t *testing.T) {
	tests := []struct {
		name string
		tone ToneEmitter
	}{
		{name: "unsupported", tone: ToneFunc(func(float64, time.Duration, float64) error {
			return audio.ErrToneUnsupported
		})},
		{name: "device error", tone: ToneFunc(func(float64, time.Duration, float64) error {
			return errors.New("device busy")
		})},
		{name: "panic", tone: ToneFunc(func(float64, time.Duration, float64) error {
			panic("driver crashed")
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			dispatcher := NewDispatcher(tt.tone, rec, zerolog.Nop())

			assert.NotPanics(t, func() {
				dispatcher.Dispatch([]phase.Cue{completedCue, completedCue})
			})
			assert.Len(t, rec.announced, 2)
		})
	}
}

func TestDispatchToleratesAnnouncerFailures(t *testing.T) {
	rec := &recorder{}
	failing := AnnounceFunc(func(string, phase.Severity) error {
		panic("toast crashed")
	})
	dispatcher := NewDispatcher(rec, failing, zerolog.Nop())

	assert.NotPanics(t, func() {
		dispatcher.Dispatch([]phase.Cue{completedCue})
	})
	assert.Len(t, rec.tones, 1)
}

func TestDispatchNilCollaborators(t *testing.T) {
	dispatcher := NewDispatcher(nil, nil, zerolog.Nop())
	assert.NotPanics(t, func() {
		dispatcher.Dispatch([]phase.Cue{completedCue})
		dispatcher.Dispatch(nil)
	})
}
