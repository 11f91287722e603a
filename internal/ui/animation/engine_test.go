package animation

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	colors []color.Color
}

func (rec *recorder) apply(value color.Color) {
	rec.mu.Lock()
	rec.colors = append(rec.colors, value)
	rec.mu.Unlock()
}

func (rec *recorder) snapshot() []color.Color {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]color.Color(nil), rec.colors...)
}

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestFlashPlaysPulsesThenRest(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.apply)

	engine.Flash(context.Background(), Pattern{
		Colors: []color.Color{red, blue},
		Step:   time.Millisecond,
		Pulses: 2,
		Rest:   Idle,
	})

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 5 }, time.Second, time.Millisecond)
	engine.Stop()
	assert.Equal(t, []color.Color{red, blue, red, blue, Idle}, rec.snapshot())
}

func TestStopCancelsWithoutRest(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.apply)

	engine.Flash(context.Background(), Pattern{Colors: []color.Color{red}, Step: time.Hour, Rest: Idle})
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)

	engine.Stop()
	assert.Equal(t, []color.Color{red}, rec.snapshot())
}

func TestNewFlashReplacesRunning(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.apply)

	engine.Flash(context.Background(), Pattern{Colors: []color.Color{red}, Step: time.Hour, Rest: Idle})
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)

	engine.Flash(context.Background(), Pattern{Colors: []color.Color{blue}, Step: time.Millisecond, Rest: Idle})
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, time.Second, time.Millisecond)
	engine.Stop()

	assert.Equal(t, []color.Color{red, blue, Idle}, rec.snapshot())
}

func TestPresetsEndOnIdle(t *testing.T) {
	for _, pattern := range []Pattern{RoundFlash(), FinishFlash()} {
		assert.Equal(t, Idle, pattern.Rest)
		assert.NotEmpty(t, pattern.Colors)
		assert.Positive(t, pattern.Step)
	}
	assert.Equal(t, 1, Pattern{}.pulses())
}
