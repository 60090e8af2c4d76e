// Package audio synthesizes cue tones and plays them through the host's
// command line audio player.
package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrToneUnsupported indicates no audio player is available on this system.
var ErrToneUnsupported = errors.New("tone playback unsupported")

// Player plays synthesized tones asynchronously. Emit never waits for the
// sound to finish.
type Player struct {
	mu           sync.Mutex
	command      string
	args         []string
	masterVolume float64
	logger       zerolog.Logger
	wg           sync.WaitGroup
	play         func(path string) error
}

// NewPlayer locates a platform player. It returns ErrToneUnsupported when
// none is installed.
func NewPlayer(masterVolume float64, logger zerolog.Logger) (*Player, error) {
	command, args, err := lookupCommand()
	if err != nil {
		return nil, err
	}
	player := &Player{
		command: command,
		args:    args,
		logger:  logger,
	}
	player.play = player.exec
	player.SetMasterVolume(masterVolume)
	return player, nil
}

// SetMasterVolume scales every tone; values are clamped to [0, 1].
func (player *Player) SetMasterVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.masterVolume = clampUnit(volume)
}

// MasterVolume returns the current scale factor.
func (player *Player) MasterVolume() float64 {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.masterVolume
}

// Emit renders the tone to a temporary WAV file and starts playback.
func (player *Player) Emit(frequency float64, duration time.Duration, volume float64) error {
	file, err := os.CreateTemp("", "apneatimer-cue-*.wav")
	if err != nil {
		return fmt.Errorf("create cue file: %w", err)
	}
	path := file.Name()
	if err := Encode(file, frequency, duration, volume*player.MasterVolume()); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close cue file: %w", err)
	}

	player.wg.Add(1)
	go func() {
		defer player.wg.Done()
		defer os.Remove(path)
		if err := player.play(path); err != nil {
			player.logger.Debug().Err(err).Float64("frequency", frequency).Msg("cue playback failed")
		}
	}()
	return nil
}

// Wait blocks until every started tone has finished playing.
func (player *Player) Wait() {
	player.wg.Wait()
}

func (player *Player) exec(path string) error {
	args := append(append([]string(nil), player.args...), path)
	if err := exec.Command(player.command, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", player.command, err)
	}
	return nil
}
