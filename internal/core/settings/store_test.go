package settings

import (
	"testing"

	"intervals/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type recordingView struct {
	settings map[model.SettingKey]string
	totals   map[model.Mode]string
}

func newRecordingView() *recordingView {
	return &recordingView{
		settings: map[model.SettingKey]string{},
		totals:   map[model.Mode]string{},
	}
}

func (view *recordingView) SetSetting(key model.SettingKey, text string) {
	view.settings[key] = text
}

func (view *recordingView) SetTotal(mode model.Mode, text string) {
	view.totals[mode] = text
}

func newStore(t *testing.T) (*Store, *recordingView) {
	t.Helper()
	store := New(model.DefaultSettings())
	view := newRecordingView()
	store.SetView(view)
	store.ResetToDefaults("")
	return store, view
}

func TestResetToDefaultsPopulatesEveryKey(t *testing.T) {
	store, view := newStore(t)

	for mode, values := range model.DefaultSettings() {
		for key, want := range values {
			got, ok := store.Value(mode, key)
			require.True(t, ok, "missing %s.%s", mode, key)
			assert.Equal(t, want, got)
		}
	}

	assert.Equal(t, "1", view.settings[model.KeyEMOMDuration])
	assert.Equal(t, "8", view.settings[model.KeyEMOMRounds])
	assert.Equal(t, "10", view.settings[model.KeyAMRAPDuration])
	assert.Equal(t, "5", view.settings[model.KeyCountIn])
	assert.Equal(t, "30", view.settings[model.KeyVolume])
	assert.Equal(t, "8:05", view.totals[model.ModeEMOM])
	assert.Equal(t, "10:05", view.totals[model.ModeAMRAP])
}

func TestResetToDefaultsSingleMode(t *testing.T) {
	store, _ := newStore(t)
	_, ok := store.Adjust(model.ModeEMOM, model.KeyEMOMRounds, 1)
	require.True(t, ok)
	_, ok = store.Adjust(model.ModeAMRAP, model.KeyAMRAPDuration, 60)
	require.True(t, ok)

	store.ResetToDefaults(model.ModeEMOM)

	rounds, _ := store.Value(model.ModeEMOM, model.KeyEMOMRounds)
	assert.Equal(t, 8, rounds)
	amrap, _ := store.Value(model.ModeAMRAP, model.KeyAMRAPDuration)
	assert.Equal(t, 660, amrap)
}

func TestResetWithoutView(t *testing.T) {
	store := New(nil)
	store.ResetToDefaults("")
	assert.Equal(t, 485, store.TotalDuration(model.ModeEMOM))
}

func TestTotalDurationEMOM(t *testing.T) {
	store, view := newStore(t)
	assert.Equal(t, 485, store.TotalDuration(model.ModeEMOM))
	assert.Equal(t, "8:05", view.totals[model.ModeEMOM])
}

func TestCountInChangeRefreshesAllTotals(t *testing.T) {
	store, view := newStore(t)

	value, ok := store.Adjust(model.ModeConfig, model.KeyCountIn, 5)
	require.True(t, ok)
	assert.Equal(t, 10, value)
	assert.Equal(t, "8:10", view.totals[model.ModeEMOM])
	assert.Equal(t, "10:10", view.totals[model.ModeAMRAP])
	_, hasConfigTotal := view.totals[model.ModeConfig]
	assert.False(t, hasConfigTotal)
}

func TestAdjustSnapping(t *testing.T) {
	cases := []struct {
		name  string
		value int
		step  int
		want  int
	}{
		{name: "up from off-boundary", value: 65, step: 60, want: 120},
		{name: "up from boundary", value: 60, step: 60, want: 120},
		{name: "down from off-boundary", value: 65, step: -60, want: 60},
		{name: "down from boundary", value: 120, step: -60, want: 60},
		{name: "down by one", value: 8, step: -1, want: 7},
		{name: "up by five", value: 32, step: 5, want: 35},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Snap(tc.value, tc.step)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdjustRejections(t *testing.T) {
	store, view := newStore(t)

	_, ok := store.Adjust(model.ModeEMOM, model.KeyEMOMDuration, -60)
	assert.False(t, ok, "60 - 60 = 0 must be rejected")
	value, _ := store.Value(model.ModeEMOM, model.KeyEMOMDuration)
	assert.Equal(t, 60, value)
	assert.Equal(t, "1", view.settings[model.KeyEMOMDuration])

	for i := 0; i < 20; i++ {
		store.Adjust(model.ModeConfig, model.KeyVolume, 10)
	}
	volume, _ := store.Value(model.ModeConfig, model.KeyVolume)
	assert.Equal(t, 100, volume)

	_, ok = store.Adjust(model.ModeConfig, model.KeyVolume, 10)
	assert.False(t, ok)

	_, ok = store.Adjust(model.ModeAMRAP, model.KeyEMOMRounds, 1)
	assert.False(t, ok, "key from another mode")

	_, ok = store.Adjust(model.Mode("tabata"), model.KeyEMOMRounds, 1)
	assert.False(t, ok)

	_, ok = store.Adjust(model.ModeEMOM, model.KeyEMOMRounds, 0)
	assert.False(t, ok)
}

func TestAdjustUpdatesDisplayInMinutes(t *testing.T) {
	store, view := newStore(t)

	_, ok := store.Adjust(model.ModeEMOM, model.KeyEMOMDuration, 30)
	require.True(t, ok)
	assert.Equal(t, "1.5", view.settings[model.KeyEMOMDuration])
	assert.Equal(t, "12:05", view.totals[model.ModeEMOM])
}

func TestReadAccessors(t *testing.T) {
	store, _ := newStore(t)
	assert.Equal(t, 60, store.RoundDuration(model.ModeEMOM))
	assert.Equal(t, 8, store.TotalRounds(model.ModeEMOM))
	assert.Equal(t, 1, store.TotalRounds(model.ModeAMRAP))
	assert.Equal(t, 5, store.CountIn())
	assert.Equal(t, 30, store.Volume())

	snapshot := store.Snapshot()
	snapshot[model.ModeEMOM][model.KeyEMOMRounds] = 99
	assert.Equal(t, 8, store.TotalRounds(model.ModeEMOM))
}

func TestPropertyAdjustStaysInBounds(t *testing.T) {
	keys := []struct {
		mode model.Mode
		key  model.SettingKey
	}{
		{model.ModeEMOM, model.KeyEMOMDuration},
		{model.ModeEMOM, model.KeyEMOMRounds},
		{model.ModeAMRAP, model.KeyAMRAPDuration},
		{model.ModeConfig, model.KeyCountIn},
		{model.ModeConfig, model.KeyVolume},
	}

	rapid.Check(t, func(t *rapid.T) {
		store := New(model.DefaultSettings())
		store.ResetToDefaults("")

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			target := keys[rapid.IntRange(0, len(keys)-1).Draw(t, "key")]
			step := rapid.SampledFrom([]int{-60, -30, -10, -5, -1, 1, 5, 10, 30, 60}).Draw(t, "step")
			store.Adjust(target.mode, target.key, step)

			value, _ := store.Value(target.mode, target.key)
			if value <= 0 {
				t.Fatalf("%s dropped to %d", target.key, value)
			}
			if target.key == model.KeyVolume && value > model.MaxVolume {
				t.Fatalf("volume rose to %d", value)
			}
		}
	})
}

func TestPropertySnapLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.IntRange(1, 10000).Draw(t, "value")
		step := rapid.IntRange(1, 600).Draw(t, "step")

		up, _ := Snap(value, step)
		if up%step != 0 || up <= value || up-step > value {
			t.Fatalf("Snap(%d, %d) = %d is not the smallest multiple above", value, step, up)
		}

		down, _ := Snap(value, -step)
		if value%step == 0 {
			if down != value-step {
				t.Fatalf("Snap(%d, %d) = %d, want %d", value, -step, down, value-step)
			}
		} else if down%step != 0 || down >= value || down+step <= value {
			t.Fatalf("Snap(%d, %d) = %d is not the nearest lower multiple", value, -step, down)
		}
	})
}
