package audio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeToFile(t *testing.T, frequency float64, duration time.Duration, volume float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cue.wav")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Encode(file, frequency, duration, volume))
	require.NoError(t, file.Close())
	return path
}

func decodeFile(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	decoder := wav.NewDecoder(file)
	require.True(t, decoder.IsValidFile())
	buffer, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	return decoder, buffer.Data
}

func TestEncodeProducesMono16BitWAV(t *testing.T) {
	decoder, data := decodeFile(t, encodeToFile(t, 800, 300*time.Millisecond, 0.3))

	assert.Equal(t, uint32(SampleRate), decoder.SampleRate)
	assert.Equal(t, uint16(16), decoder.BitDepth)
	assert.Equal(t, uint16(1), decoder.NumChans)
	assert.Len(t, data, 6615)
}

func TestSamplesDecay(t *testing.T) {
	data := Samples(440, time.Second, 0.5)
	count := len(data)

	peak := func(from, to int) float64 {
		maxValue := 0.0
		for _, sample := range data[from:to] {
			maxValue = math.Max(maxValue, math.Abs(float64(sample)))
		}
		return maxValue / math.MaxInt16
	}

	head := peak(0, count/10)
	tail := peak(count-count/10, count)
	assert.InDelta(t, 0.5, head, 0.05)
	assert.Less(t, tail, 0.03)
	assert.Greater(t, head, tail)
}

func TestSamplesSilentAndClamped(t *testing.T) {
	silent := Samples(440, 100*time.Millisecond, 0)
	assert.Equal(t, make([]int, len(silent)), silent)

	loud := Samples(440, 100*time.Millisecond, 7)
	require.Equal(t, len(silent), len(loud))
	for _, sample := range loud {
		assert.LessOrEqual(t, sample, math.MaxInt16)
		assert.GreaterOrEqual(t, sample, -math.MaxInt16)
	}
}

func TestEncodeDecodedSamplesMatch(t *testing.T) {
	_, data := decodeFile(t, encodeToFile(t, 1000, 50*time.Millisecond, 0.4))
	assert.Equal(t, Samples(1000, 50*time.Millisecond, 0.4), data)
}

func TestEncodeZeroDuration(t *testing.T) {
	path := encodeToFile(t, 600, 0, 0.3)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(44), info.Size())
}

func newTestPlayer(play func(path string) error) *Player {
	player := &Player{logger: zerolog.New(io.Discard), play: play}
	player.SetMasterVolume(1)
	return player
}

func TestPlayerEmitWritesAndRemovesFile(t *testing.T) {
	var mu sync.Mutex
	var played []string
	var sizes []int64

	player := newTestPlayer(func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		mu.Lock()
		played = append(played, path)
		sizes = append(sizes, info.Size())
		mu.Unlock()
		return nil
	})

	require.NoError(t, player.Emit(600, 150*time.Millisecond, 0.3))
	player.Wait()

	require.Len(t, played, 1)
	assert.Equal(t, int64(44+3307*2), sizes[0])
	_, err := os.Stat(played[0])
	assert.True(t, os.IsNotExist(err))
}

func TestPlayerEmitIgnoresPlaybackFailure(t *testing.T) {
	player := newTestPlayer(func(string) error { return errors.New("device busy") })
	assert.NoError(t, player.Emit(600, 50*time.Millisecond, 0.3))
	player.Wait()
}

func TestPlayerMasterVolumeClamped(t *testing.T) {
	player := newTestPlayer(func(string) error { return nil })
	player.SetMasterVolume(2)
	assert.Equal(t, 1.0, player.MasterVolume())
	player.SetMasterVolume(-1)
	assert.Equal(t, 0.0, player.MasterVolume())
}

func TestBellRingsPerTone(t *testing.T) {
	var out bytes.Buffer
	bell := NewBell(&out)
	require.NoError(t, bell.Emit(600, time.Second, 0.3))
	require.NoError(t, bell.Emit(1200, time.Second, 0.4))
	assert.Equal(t, "\a\a", out.String())
}
