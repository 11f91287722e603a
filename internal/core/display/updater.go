package display

import (
	"strconv"

	"intervals/internal/core/model"
	"intervals/internal/core/tone"
)

// Face is the countdown view written by the updater.
type Face interface {
	SetTime(minutes, seconds string)
	SetRound(round string)
	SetTotalRounds(total string)
}

// Beeper plays a tone.
type Beeper interface {
	Beep(tone tone.Tone)
}

// Cue is the audio feedback chosen for a frame.
type Cue int

const (
	CueNone Cue = iota
	CueTick
	CueRound
	CueFinish
)

// String returns the cue name.
func (cue Cue) String() string {
	switch cue {
	case CueTick:
		return "tick"
	case CueRound:
		return "round"
	case CueFinish:
		return "finish"
	default:
		return "none"
	}
}

// Updater renders frames and plays the matching cue.
type Updater struct {
	face   Face
	beeper Beeper
}

// New creates an updater. Either port may be nil.
func New(face Face, beeper Beeper) *Updater {
	return &Updater{face: face, beeper: beeper}
}

// Render writes the frame and plays at most one cue.
func (updater *Updater) Render(frame model.Frame) Cue {
	if updater.face != nil {
		minutes, seconds := model.SplitClock(frame.Remaining)
		updater.face.SetTime(minutes, seconds)
		if frame.HasTotal {
			updater.face.SetTotalRounds(strconv.Itoa(frame.TotalRounds))
		}
		if frame.HasRound {
			updater.face.SetRound(strconv.Itoa(frame.Round))
		}
	}

	cue := SelectCue(frame)
	if updater.beeper != nil {
		switch cue {
		case CueFinish:
			updater.beeper.Beep(tone.Finish)
		case CueRound:
			updater.beeper.Beep(tone.RoundStart)
		case CueTick:
			updater.beeper.Beep(tone.Tick)
		}
	}
	return cue
}

// SelectCue picks the cue for a frame.
func SelectCue(frame model.Frame) Cue {
	if frame.HasRound {
		if frame.Remaining == 0 && frame.Round == 0 && frame.HasTotal && frame.TotalRounds == 0 {
			return CueFinish
		}
		return CueRound
	}
	if frame.Remaining <= 3 && !frame.Paused {
		return CueTick
	}
	return CueNone
}
