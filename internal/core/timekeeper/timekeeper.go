package timekeeper

import (
	"errors"
	"log"
	"sync"
	"time"

	"intervals/internal/core/display"
	"intervals/internal/core/model"
)

// ErrRunning indicates a countdown is already in flight.
var ErrRunning = errors.New("countdown already running")

// ErrNotTimerMode indicates the mode cannot be started.
var ErrNotTimerMode = errors.New("mode is not a timer mode")

// Settings is read on every tick, so adjustments apply to a running countdown.
type Settings interface {
	RoundDuration(mode model.Mode) int
	TotalRounds(mode model.Mode) int
	CountIn() int
}

// Renderer draws a frame and plays its cue.
type Renderer interface {
	Render(frame model.Frame) display.Cue
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval   time.Duration
	FirstTickDelay time.Duration
	// Logger receives one line per tick when set.
	Logger *log.Logger
}

// Plan describes a countdown to start.
type Plan struct {
	Mode model.Mode
	// OnComplete runs once after the terminal frame, outside the keeper lock.
	OnComplete func(cancelled bool)
}

// run is the state of one countdown. It is only touched with the keeper lock held.
type run struct {
	mode        model.Mode
	state       State
	start       time.Time
	ticks       time.Duration
	drift       time.Duration
	round       int
	totalRounds int
	remaining   int
	next        int
	paused      bool
	cancel      bool
	timer       Timer
	onComplete  func(bool)
}

// TimeKeeper is the drift-corrected countdown state machine.
type TimeKeeper struct {
	mu       sync.Mutex
	clock    Clock
	settings Settings
	renderer Renderer
	options  Config
	run      *run
	events   []chan Event
}

// New creates a TimeKeeper. A nil clock uses SystemClock.
func New(settings Settings, renderer Renderer, clock Clock, options Config) *TimeKeeper {
	if clock == nil {
		clock = SystemClock
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.FirstTickDelay <= 0 {
		options.FirstTickDelay = options.TickInterval
	}
	return &TimeKeeper{
		clock:    clock,
		settings: settings,
		renderer: renderer,
		options:  options,
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start renders the count-in and schedules the first tick.
func (keeper *TimeKeeper) Start(plan Plan) error {
	if !plan.Mode.IsTimer() {
		return ErrNotTimerMode
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.run != nil {
		return ErrRunning
	}

	countIn := keeper.settings.CountIn()
	current := &run{
		mode:        plan.Mode,
		state:       StateCountIn,
		totalRounds: keeper.settings.TotalRounds(plan.Mode),
		remaining:   countIn,
		onComplete:  plan.OnComplete,
	}
	keeper.run = current

	keeper.renderer.Render(model.CountInFrame(countIn, current.totalRounds))

	current.start = keeper.clock.Now()
	current.next = countIn - 1
	current.timer = keeper.clock.AfterFunc(keeper.options.FirstTickDelay, func() {
		keeper.tick(current, countIn-1)
	})

	keeper.emitLocked(keeper.eventLocked(EventStarted, current.start))
	return nil
}

// TogglePause flips the paused flag of the active run. It reports the new
// paused state and whether a run was active.
func (keeper *TimeKeeper) TogglePause() (bool, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.run == nil {
		return false, false
	}
	keeper.run.paused = !keeper.run.paused

	eventType := EventResumed
	if keeper.run.paused {
		eventType = EventPaused
	}
	keeper.emitLocked(keeper.eventLocked(eventType, keeper.clock.Now()))
	return keeper.run.paused, true
}

// Cancel flags the active run; the next tick completes it.
func (keeper *TimeKeeper) Cancel() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.run == nil {
		return false
	}
	keeper.run.cancel = true
	return true
}

// Active reports whether a countdown is in flight.
func (keeper *TimeKeeper) Active() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.run != nil
}

// Snapshot returns the current run as an event.
func (keeper *TimeKeeper) Snapshot() (Event, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.run == nil {
		return Event{State: StateIdle}, false
	}
	return keeper.eventLocked(EventTick, keeper.clock.Now()), true
}

// Stop abandons any run without rendering and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.run != nil && keeper.run.timer != nil {
		keeper.run.timer.Stop()
	}
	keeper.run = nil
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tick(current *run, remaining int) {
	keeper.mu.Lock()
	if keeper.run != current {
		keeper.mu.Unlock()
		return
	}

	current.totalRounds = keeper.settings.TotalRounds(current.mode)
	if current.cancel {
		remaining = -1
		current.round = current.totalRounds
	}

	if remaining <= 0 {
		if current.round >= current.totalRounds {
			keeper.completeLocked(current)
			return
		}
		current.round++
		remaining = keeper.settings.RoundDuration(current.mode)
		current.state = StateRoundTransition
		keeper.renderer.Render(model.RoundFrame(remaining, current.round, current.totalRounds))
	} else {
		if current.round == 0 {
			current.state = StateCountIn
		} else {
			current.state = StateRoundActive
		}
		keeper.renderer.Render(model.TimeFrame(remaining, current.paused))
	}
	current.remaining = remaining

	if current.paused {
		current.next = remaining
	} else {
		current.next = remaining - 1
	}

	now := keeper.clock.Now()
	current.ticks += keeper.options.TickInterval
	current.drift = now.Sub(current.start) - current.ticks
	delay := keeper.options.TickInterval - current.drift

	if keeper.options.Logger != nil {
		keeper.options.Logger.Printf("sec %d rd %d drift %s", remaining, current.round, current.drift)
	}
	keeper.emitLocked(keeper.eventLocked(EventTick, now))

	next := current.next
	current.timer = keeper.clock.AfterFunc(delay, func() {
		keeper.tick(current, next)
	})
	keeper.mu.Unlock()
}

// completeLocked renders the terminal frame and releases the lock.
func (keeper *TimeKeeper) completeLocked(current *run) {
	keeper.renderer.Render(model.FinishFrame())
	current.state = StateComplete
	current.remaining = 0
	current.timer = nil
	keeper.run = nil

	event := Event{
		Type:        EventDone,
		State:       StateComplete,
		Mode:        current.mode,
		Round:       current.round,
		TotalRounds: current.totalRounds,
		Cancelled:   current.cancel,
		Drift:       current.drift,
		At:          keeper.clock.Now(),
	}
	keeper.emitLocked(event)
	onComplete := current.onComplete
	cancelled := current.cancel
	keeper.mu.Unlock()

	if onComplete != nil {
		onComplete(cancelled)
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType, at time.Time) Event {
	current := keeper.run
	return Event{
		Type:        eventType,
		State:       current.state,
		Mode:        current.mode,
		Remaining:   current.remaining,
		Round:       current.round,
		TotalRounds: current.totalRounds,
		Paused:      current.paused,
		Cancelled:   current.cancel,
		Drift:       current.drift,
		At:          at,
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
