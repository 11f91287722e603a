package model

// Frame is one clock display update. Round and TotalRounds are only
// meaningful when the matching Has flag is set.
type Frame struct {
	Remaining   int
	Round       int
	TotalRounds int
	HasRound    bool
	HasTotal    bool
	Paused      bool
}

// TimeFrame updates the remaining time only.
func TimeFrame(remaining int, paused bool) Frame {
	return Frame{Remaining: remaining, Paused: paused}
}

// CountInFrame shows the count-in time together with the round total.
func CountInFrame(remaining, totalRounds int) Frame {
	return Frame{Remaining: remaining, TotalRounds: totalRounds, HasTotal: true}
}

// RoundFrame announces a new round.
func RoundFrame(remaining, round, totalRounds int) Frame {
	return Frame{
		Remaining:   remaining,
		Round:       round,
		TotalRounds: totalRounds,
		HasRound:    true,
		HasTotal:    true,
	}
}

// FinishFrame is the terminal (0, 0, 0) frame.
func FinishFrame() Frame {
	return Frame{HasRound: true, HasTotal: true}
}
