package timekeeper

import (
	"time"

	"intervals/internal/core/model"
)

// State represents the countdown phase.
type State string

const (
	StateIdle            State = "idle"
	StateCountIn         State = "count_in"
	StateRoundActive     State = "round_active"
	StateRoundTransition State = "round_transition"
	StateComplete        State = "complete"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStarted EventType = "started"
	EventTick    EventType = "tick"
	EventPaused  EventType = "paused"
	EventResumed EventType = "resumed"
	EventDone    EventType = "done"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type        EventType
	State       State
	Mode        model.Mode
	Remaining   int
	Round       int
	TotalRounds int
	Paused      bool
	Cancelled   bool
	Drift       time.Duration
	At          time.Time
}
