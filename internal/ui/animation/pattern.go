package animation

import (
	"image/color"
	"time"
)

// Pattern is a flash: Colors held for Step each, repeated Pulses times, then Rest.
type Pattern struct {
	Colors []color.Color
	Step   time.Duration
	Pulses int
	Rest   color.Color
}

func (pattern Pattern) pulses() int {
	if pattern.Pulses <= 0 {
		return 1
	}
	return pattern.Pulses
}

var (
	// Idle is the clock face background between flashes.
	Idle = color.NRGBA{R: 24, G: 24, B: 28, A: 255}

	roundColor  = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	finishColor = color.NRGBA{R: 200, G: 60, B: 50, A: 255}
)

// RoundFlash marks the start of a round.
func RoundFlash() Pattern {
	return Pattern{
		Colors: []color.Color{roundColor, Idle},
		Step:   150 * time.Millisecond,
		Pulses: 2,
		Rest:   Idle,
	}
}

// FinishFlash marks the end of the workout.
func FinishFlash() Pattern {
	return Pattern{
		Colors: []color.Color{finishColor, Idle},
		Step:   250 * time.Millisecond,
		Pulses: 3,
		Rest:   Idle,
	}
}
