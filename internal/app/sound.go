package app

import (
	"sync/atomic"
	"time"

	"apneatimer/internal/core/cue"
)

// SoundSwitch gates a tone emitter behind the "sound enabled" preference.
type SoundSwitch struct {
	tone    cue.ToneEmitter
	enabled atomic.Bool
}

// NewSoundSwitch wraps tone. A nil tone stays silent.
func NewSoundSwitch(tone cue.ToneEmitter, enabled bool) *SoundSwitch {
	sound := &SoundSwitch{tone: tone}
	sound.enabled.Store(enabled)
	return sound
}

// SetEnabled toggles playback.
func (sound *SoundSwitch) SetEnabled(enabled bool) {
	sound.enabled.Store(enabled)
}

// Enabled reports whether tones are played.
func (sound *SoundSwitch) Enabled() bool {
	return sound.enabled.Load()
}

// Emit forwards to the wrapped emitter when enabled.
func (sound *SoundSwitch) Emit(frequencyHz float64, duration time.Duration, volume float64) error {
	if !sound.enabled.Load() || sound.tone == nil {
		return nil
	}
	return sound.tone.Emit(frequencyHz, duration, volume)
}
