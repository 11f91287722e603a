package animation

import (
	"context"
	"image/color"
	"sync"
	"time"
)

// Engine plays color flashes on a single surface. Starting a flash
// cancels the one in progress.
type Engine struct {
	mu     sync.Mutex
	apply  func(color.Color)
	cancel context.CancelFunc
	runs   sync.WaitGroup
}

// New creates an engine that paints through apply. apply is called from
// the engine goroutine.
func New(apply func(color.Color)) *Engine {
	return &Engine{apply: apply}
}

// Flash plays pattern until it finishes or ctx is cancelled.
func (engine *Engine) Flash(ctx context.Context, pattern Pattern) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.runs.Add(1)
	engine.mu.Unlock()

	go func() {
		defer engine.runs.Done()
		engine.play(runCtx, pattern)
	}()
}

// Stop cancels any flash and waits for its goroutine to exit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.mu.Unlock()
	engine.runs.Wait()
}

func (engine *Engine) play(ctx context.Context, pattern Pattern) {
	for pulse := 0; pulse < pattern.pulses(); pulse++ {
		for _, step := range pattern.Colors {
			if ctx.Err() != nil {
				return
			}
			engine.apply(step)
			if !sleepWithContext(ctx, pattern.Step) {
				return
			}
		}
	}
	if ctx.Err() == nil {
		engine.apply(pattern.Rest)
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
