package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"intervals/internal/core/model"
	"intervals/internal/core/timekeeper"
)

var (
	// ErrSessionActive indicates a workout is already running.
	ErrSessionActive = errors.New("session already active")
	// ErrUnknownMode indicates the requested mode cannot be started.
	ErrUnknownMode = errors.New("unknown timer mode")
)

const (
	LabelPause = "Pause"
	LabelPlay  = "Play"
)

// releaseTimeout bounds the wake-lock release that runs on the tick goroutine.
const releaseTimeout = 5 * time.Second

// WakeLock keeps the display awake while a workout runs.
type WakeLock interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

// Layout switches between the settings panels and the countdown view.
type Layout interface {
	SetActive(active bool)
	SetPauseLabel(label string)
}

// Countdown is the scheduler driven by the controller.
type Countdown interface {
	Start(plan timekeeper.Plan) error
	TogglePause() (bool, bool)
	Cancel() bool
}

// Controller owns the workout lifecycle.
type Controller struct {
	mu        sync.Mutex
	countdown Countdown
	wakeLock  WakeLock
	layout    Layout
	active    bool
	lockHeld  bool
	mode      model.Mode
	done      chan struct{}
}

// New creates a controller. wakeLock and layout may be nil.
func New(countdown Countdown, wakeLock WakeLock, layout Layout) *Controller {
	return &Controller{
		countdown: countdown,
		wakeLock:  wakeLock,
		layout:    layout,
	}
}

// Start begins a workout in mode.
func (controller *Controller) Start(ctx context.Context, mode model.Mode) error {
	if !mode.IsTimer() {
		return fmt.Errorf("start %q: %w", mode, ErrUnknownMode)
	}

	controller.mu.Lock()
	if controller.active {
		controller.mu.Unlock()
		return ErrSessionActive
	}
	controller.active = true
	controller.mode = mode
	controller.done = make(chan struct{})
	controller.mu.Unlock()

	lockHeld := false
	if controller.wakeLock != nil {
		if err := controller.wakeLock.Acquire(ctx); err != nil {
			log.Printf("wake lock: %v", err)
		} else {
			lockHeld = true
		}
	}

	controller.mu.Lock()
	controller.lockHeld = lockHeld
	controller.mu.Unlock()

	if controller.layout != nil {
		controller.layout.SetPauseLabel(LabelPause)
		controller.layout.SetActive(true)
	}

	err := controller.countdown.Start(timekeeper.Plan{
		Mode:       mode,
		OnComplete: controller.finish,
	})
	if err != nil {
		controller.finish(false)
		return fmt.Errorf("start countdown: %w", err)
	}
	return nil
}

// Pause toggles the paused flag and reports whether the workout is now paused.
func (controller *Controller) Pause() bool {
	paused, ok := controller.countdown.TogglePause()
	if !ok {
		return false
	}
	if controller.layout != nil {
		if paused {
			controller.layout.SetPauseLabel(LabelPlay)
		} else {
			controller.layout.SetPauseLabel(LabelPause)
		}
	}
	return paused
}

// Cancel stops the workout on its next tick.
func (controller *Controller) Cancel() {
	controller.countdown.Cancel()
}

// Active reports whether a workout is running.
func (controller *Controller) Active() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.active
}

// Mode returns the mode of the running workout.
func (controller *Controller) Mode() (model.Mode, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.mode, controller.active
}

// Done returns a channel closed when the current workout ends. It is nil
// when no workout has been started.
func (controller *Controller) Done() <-chan struct{} {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.done
}

// Shutdown cancels any workout and waits for it to finish or ctx to expire.
func (controller *Controller) Shutdown(ctx context.Context) error {
	done := controller.Done()
	if !controller.countdown.Cancel() || done == nil {
		controller.releaseWakeLock(ctx)
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		controller.releaseWakeLock(ctx)
		return fmt.Errorf("shutdown session: %w", ctx.Err())
	}
}

func (controller *Controller) finish(cancelled bool) {
	controller.mu.Lock()
	if !controller.active {
		controller.mu.Unlock()
		return
	}
	controller.active = false
	done := controller.done
	mode := controller.mode
	controller.mu.Unlock()

	if controller.layout != nil {
		controller.layout.SetActive(false)
		controller.layout.SetPauseLabel(LabelPause)
	}

	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	controller.releaseWakeLock(ctx)

	if cancelled {
		log.Printf("%s workout cancelled", mode)
	}
	close(done)
}

func (controller *Controller) releaseWakeLock(ctx context.Context) {
	controller.mu.Lock()
	held := controller.lockHeld
	controller.lockHeld = false
	controller.mu.Unlock()

	if !held || controller.wakeLock == nil {
		return
	}
	if err := controller.wakeLock.Release(ctx); err != nil {
		log.Printf("release wake lock: %v", err)
	}
}
