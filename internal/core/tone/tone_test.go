package tone

import (
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedVolume int

func (volume fixedVolume) Volume() int { return int(volume) }

func drain(t *testing.T, streamer beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buffer := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buffer)
		out = append(out, buffer[:n]...)
		if !ok {
			return out
		}
	}
}

func TestSquareLengthAndLevels(t *testing.T) {
	sampleRate := beep.SampleRate(8000)
	samples := drain(t, Square(sampleRate, Tone{Frequency: 1000, Duration: 100 * time.Millisecond}, 0.3))

	require.Len(t, samples, 800)
	for _, sample := range samples {
		assert.InDelta(t, 0.3, abs(sample[0]), 1e-9)
		assert.Equal(t, sample[0], sample[1])
	}
	// 8 samples per period at 1 kHz: four high then four low.
	assert.Equal(t, 0.3, samples[0][0])
	assert.Equal(t, 0.3, samples[3][0])
	assert.Equal(t, -0.3, samples[4][0])
	assert.Equal(t, -0.3, samples[7][0])
	assert.Equal(t, 0.3, samples[8][0])
}

func TestGainIsLinearInVolume(t *testing.T) {
	assert.Equal(t, 0.3, New(fixedVolume(30), SampleRate, nil).Gain())
	assert.Equal(t, 1.0, New(fixedVolume(100), SampleRate, nil).Gain())
	assert.Equal(t, 0.0, New(fixedVolume(0), SampleRate, nil).Gain())
	assert.Equal(t, 1.0, New(fixedVolume(250), SampleRate, nil).Gain())
	assert.Equal(t, 0.0, New(nil, SampleRate, nil).Gain())
}

func TestBeepUsesDefaultsAndCurrentVolume(t *testing.T) {
	volume := fixedVolume(50)
	var played []beep.Streamer
	generator := New(volume, beep.SampleRate(1000), func(streamer beep.Streamer) {
		played = append(played, streamer)
	})

	generator.Beep(Tone{})
	generator.Beep(Finish)

	require.Len(t, played, 2)
	tick := drain(t, played[0])
	assert.Len(t, tick, 100)
	assert.Equal(t, 0.5, tick[0][0])

	finish := drain(t, played[1])
	assert.Len(t, finish, 500)
}

func TestSilentGeneratorDropsTones(t *testing.T) {
	generator := NewSilent(fixedVolume(30))
	assert.NotPanics(t, func() { generator.Beep(RoundStart) })
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
