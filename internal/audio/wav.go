package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SampleRate is the PCM rate used for synthesized cues.
const SampleRate = 22050

const (
	bitDepth      = 16
	channels      = 1
	pcmFormat     = 1
	rampFloor     = 0.01
	maxSampleSize = math.MaxInt16
)

// Samples renders a sine tone as 16-bit PCM values. The gain starts at
// volume and decays exponentially to 0.01 by the end of the tone.
func Samples(frequency float64, duration time.Duration, volume float64) []int {
	volume = clampUnit(volume)
	count := 0
	if duration > 0 {
		count = int(int64(duration) * SampleRate / int64(time.Second))
	}

	data := make([]int, count)
	if volume == 0 {
		return data
	}
	start := math.Max(volume, rampFloor)
	for i := range data {
		position := float64(i) / float64(count)
		gain := start * math.Pow(rampFloor/start, position)
		data[i] = int(gain * math.Sin(2*math.Pi*frequency*float64(i)/SampleRate) * maxSampleSize)
	}
	return data
}

// Encode writes the tone as a mono 16-bit WAV file to w.
func Encode(w io.WriteSeeker, frequency float64, duration time.Duration, volume float64) error {
	encoder := wav.NewEncoder(w, SampleRate, bitDepth, channels, pcmFormat)
	buffer := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: SampleRate},
		Data:           Samples(frequency, duration, volume),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buffer); err != nil {
		return fmt.Errorf("encode cue: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finish cue: %w", err)
	}
	return nil
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
