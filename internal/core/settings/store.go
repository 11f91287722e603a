package settings

import (
	"sync"

	"intervals/internal/core/model"
)

// View receives display text for settings and totals. Implementations
// ignore keys they have no element for.
type View interface {
	SetSetting(key model.SettingKey, text string)
	SetTotal(mode model.Mode, text string)
}

// Store holds defaults and current values for every mode.
type Store struct {
	mu       sync.RWMutex
	defaults model.Defaults
	current  model.Defaults
	view     View
}

// New creates a store seeded with a copy of defaults. Call ResetToDefaults
// to populate the current values.
func New(defaults model.Defaults) *Store {
	if defaults == nil {
		defaults = model.DefaultSettings()
	}
	current := make(model.Defaults, len(defaults))
	for mode := range defaults {
		current[mode] = model.Values{}
	}
	return &Store{
		defaults: defaults.Clone(),
		current:  current,
	}
}

// SetView attaches the display. A nil view disables display updates.
func (store *Store) SetView(view View) {
	store.mu.Lock()
	store.view = view
	store.mu.Unlock()
}

// ResetToDefaults copies defaults into the current settings for mode, or
// for every mode when mode is empty.
func (store *Store) ResetToDefaults(mode model.Mode) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, target := range model.Modes {
		values, ok := store.defaults[target]
		if !ok || (mode != "" && target != mode) {
			continue
		}
		for key, value := range values {
			store.current[target][key] = value
			if store.view != nil {
				store.view.SetSetting(key, key.DisplayValue(value))
			}
		}
		store.refreshTotalsLocked(target)
	}
}

// Adjust steps a setting to the next multiple of step in the direction of
// its sign. It returns the stored value and whether the change was applied.
func (store *Store) Adjust(mode model.Mode, key model.SettingKey, step int) (int, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, ok := store.current[mode]
	if !ok {
		return 0, false
	}
	current, ok := values[key]
	if !ok {
		return 0, false
	}

	next, ok := Snap(current, step)
	if !ok || next <= 0 || (key == model.KeyVolume && next > model.MaxVolume) {
		return current, false
	}

	values[key] = next
	if store.view != nil {
		store.view.SetSetting(key, key.DisplayValue(next))
	}
	store.refreshTotalsLocked(mode)
	return next, true
}

// Snap moves value to the next multiple of step. A positive step always
// lands strictly above value; a negative step lands on the previous
// boundary, or one full step lower when value is already on a boundary.
func Snap(value, step int) (int, bool) {
	if step == 0 {
		return value, false
	}
	if step > 0 {
		return value + (step - value%step), true
	}
	if value%step != 0 {
		return value - value%step, true
	}
	return value + step, true
}

// TotalDuration returns countIn + duration × rounds for a timer mode.
func (store *Store) TotalDuration(mode model.Mode) int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.totalLocked(mode)
}

// RefreshTotals re-renders the total for a timer mode, or for all timer
// modes when mode is the shared config group.
func (store *Store) RefreshTotals(mode model.Mode) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.refreshTotalsLocked(mode)
}

// RoundDuration returns the configured round length in seconds.
func (store *Store) RoundDuration(mode model.Mode) int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current[mode][mode.DurationKey()]
}

// TotalRounds returns the configured round count, 1 for modes without rounds.
func (store *Store) TotalRounds(mode model.Mode) int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.roundsLocked(mode)
}

// CountIn returns the shared count-in in seconds.
func (store *Store) CountIn() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.countInLocked()
}

// Volume returns the shared volume percentage.
func (store *Store) Volume() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current[model.ModeConfig][model.KeyVolume]
}

// Value returns a current setting.
func (store *Store) Value(mode model.Mode, key model.SettingKey) (int, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.current[mode][key]
	return value, ok
}

// Snapshot returns a copy of the current values.
func (store *Store) Snapshot() model.Defaults {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current.Clone()
}

func (store *Store) refreshTotalsLocked(mode model.Mode) {
	if !mode.IsTimer() {
		for _, timerMode := range model.TimerModes {
			store.refreshTotalsLocked(timerMode)
		}
		return
	}
	if store.view != nil {
		store.view.SetTotal(mode, model.FormatClock(store.totalLocked(mode)))
	}
}

func (store *Store) totalLocked(mode model.Mode) int {
	duration := store.current[mode][mode.DurationKey()]
	return store.countInLocked() + duration*store.roundsLocked(mode)
}

func (store *Store) roundsLocked(mode model.Mode) int {
	if rounds, ok := store.current[mode][mode.RoundsKey()]; ok {
		return rounds
	}
	return 1
}

func (store *Store) countInLocked() int {
	if countIn, ok := store.current[model.ModeConfig][model.KeyCountIn]; ok {
		return countIn
	}
	return store.defaults[model.ModeConfig][model.KeyCountIn]
}
