// Package cue forwards the cues produced by the phase engine to the tone
// and notification collaborators. Delivery is best effort: failures are
// logged and never reach the caller.
package cue

import (
	"errors"
	"fmt"
	"time"

	"apneatimer/internal/audio"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/metrics"

	"github.com/rs/zerolog"
)

// ToneEmitter plays a tone. Implementations must return promptly; the
// dispatcher is called while the session lock is held.
type ToneEmitter interface {
	Emit(frequencyHz float64, duration time.Duration, volume float64) error
}

// Announcer shows a user-facing message.
type Announcer interface {
	Announce(message string, severity phase.Severity) error
}

// ToneFunc adapts a function to ToneEmitter.
type ToneFunc func(frequencyHz float64, duration time.Duration, volume float64) error

// Emit calls fn.
func (fn ToneFunc) Emit(frequencyHz float64, duration time.Duration, volume float64) error {
	return fn(frequencyHz, duration, volume)
}

// AnnounceFunc adapts a function to Announcer.
type AnnounceFunc func(message string, severity phase.Severity) error

// Announce calls fn.
func (fn AnnounceFunc) Announce(message string, severity phase.Severity) error {
	return fn(message, severity)
}

// Dispatcher delivers cues. A nil tone emitter means no audio capability.
type Dispatcher struct {
	tone      ToneEmitter
	announcer Announcer
	logger    zerolog.Logger
}

// NewDispatcher creates a Dispatcher. Either collaborator may be nil.
func NewDispatcher(tone ToneEmitter, announcer Announcer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{tone: tone, announcer: announcer, logger: logger}
}

// Dispatch delivers every cue in order.
func (dispatcher *Dispatcher) Dispatch(cues []phase.Cue) {
	for _, cue := range cues {
		dispatcher.emitTone(cue)
		if cue.HasAnnouncement() {
			dispatcher.announce(cue)
		}
	}
}

func (dispatcher *Dispatcher) emitTone(cue phase.Cue) {
	if dispatcher.tone == nil || cue.Frequency <= 0 {
		metrics.RecordCue(metrics.ChannelTone, metrics.CueSkipped)
		return
	}
	err := safeCall(func() error {
		return dispatcher.tone.Emit(cue.Frequency, cue.Duration, cue.Volume)
	})
	switch {
	case err == nil:
		metrics.RecordCue(metrics.ChannelTone, metrics.CueDelivered)
	case errors.Is(err, audio.ErrToneUnsupported):
		metrics.RecordCue(metrics.ChannelTone, metrics.CueSkipped)
	default:
		metrics.RecordCue(metrics.ChannelTone, metrics.CueFailed)
		dispatcher.logger.Warn().Err(err).Float64("frequency", cue.Frequency).Msg("tone emission failed")
	}
}

func (dispatcher *Dispatcher) announce(cue phase.Cue) {
	if dispatcher.announcer == nil {
		metrics.RecordCue(metrics.ChannelAnnounce, metrics.CueSkipped)
		return
	}
	err := safeCall(func() error {
		return dispatcher.announcer.Announce(cue.Announce, cue.Severity)
	})
	if err != nil {
		metrics.RecordCue(metrics.ChannelAnnounce, metrics.CueFailed)
		dispatcher.logger.Warn().Err(err).Str("message", cue.Announce).Msg("announcement failed")
		return
	}
	metrics.RecordCue(metrics.ChannelAnnounce, metrics.CueDelivered)
}

// safeCall turns a collaborator panic into an error.
func safeCall(call func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("collaborator panicked: %v", recovered)
		}
	}()
	return call()
}
