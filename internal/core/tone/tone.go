// Package tone synthesizes the square-wave cues played during a workout.
package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SampleRate is the speaker sample rate.
const SampleRate = beep.SampleRate(44100)

// Tone is a single beep.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

var (
	// Tick is the default countdown beep.
	Tick = Tone{Frequency: 440, Duration: 100 * time.Millisecond}
	// RoundStart announces a new round.
	RoundStart = Tone{Frequency: 880, Duration: 500 * time.Millisecond}
	// Finish marks the end of the workout.
	Finish = Tone{Frequency: 220, Duration: 500 * time.Millisecond}
)

// VolumeSource reports the configured volume in percent.
type VolumeSource interface {
	Volume() int
}

// Generator plays tones at the current volume.
type Generator struct {
	volume     VolumeSource
	sampleRate beep.SampleRate
	play       func(beep.Streamer)
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewSpeaker returns a generator bound to the system audio output. The
// speaker is initialized once per process; later calls share it.
func NewSpeaker(volume VolumeSource) (*Generator, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
			speakerErr = fmt.Errorf("init speaker: %w", err)
		}
	})
	if speakerErr != nil {
		return NewSilent(volume), speakerErr
	}
	return New(volume, SampleRate, func(streamer beep.Streamer) {
		speaker.Play(streamer)
	}), nil
}

// New creates a generator that hands rendered tones to play.
func New(volume VolumeSource, sampleRate beep.SampleRate, play func(beep.Streamer)) *Generator {
	return &Generator{
		volume:     volume,
		sampleRate: sampleRate,
		play:       play,
	}
}

// NewSilent returns a generator that drops every tone.
func NewSilent(volume VolumeSource) *Generator {
	return &Generator{volume: volume, sampleRate: SampleRate}
}

// Beep plays tone without blocking. Zero fields fall back to Tick.
func (generator *Generator) Beep(tone Tone) {
	if tone.Frequency <= 0 {
		tone.Frequency = Tick.Frequency
	}
	if tone.Duration <= 0 {
		tone.Duration = Tick.Duration
	}
	if generator.play == nil {
		return
	}
	generator.play(Square(generator.sampleRate, tone, generator.Gain()))
}

// Gain maps the 0-100 volume linearly onto 0.0-1.0.
func (generator *Generator) Gain() float64 {
	if generator.volume == nil {
		return 0
	}
	volume := generator.volume.Volume()
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return float64(volume) / 100
}

// Square renders a square wave of the tone's frequency and length.
func Square(sampleRate beep.SampleRate, tone Tone, gain float64) beep.Streamer {
	total := sampleRate.N(tone.Duration)
	position := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		count := 0
		for count < len(samples) && position < total {
			phase := float64(position) * tone.Frequency / float64(sampleRate)
			phase -= float64(int64(phase))
			value := gain
			if phase >= 0.5 {
				value = -gain
			}
			samples[count][0] = value
			samples[count][1] = value
			count++
			position++
		}
		return count, true
	})
	return streamer
}
