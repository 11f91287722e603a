package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode names a settings group. EMOM and AMRAP are timer modes; Config holds
// values shared by every timer mode.
type Mode string

const (
	ModeEMOM   Mode = "emom"
	ModeAMRAP  Mode = "amrap"
	ModeConfig Mode = "config"
)

// SettingKey identifies a single numeric setting.
type SettingKey string

const (
	KeyEMOMDuration  SettingKey = "emomDuration"
	KeyEMOMRounds    SettingKey = "emomRounds"
	KeyAMRAPDuration SettingKey = "amrapDuration"
	KeyCountIn       SettingKey = "configCountIn"
	KeyVolume        SettingKey = "configVolume"
)

// MaxVolume is the upper bound of KeyVolume.
const MaxVolume = 100

// Modes lists every settings group in display order.
var Modes = []Mode{ModeEMOM, ModeAMRAP, ModeConfig}

// TimerModes lists the modes that can be started.
var TimerModes = []Mode{ModeEMOM, ModeAMRAP}

// IsTimer reports whether the mode can run a countdown.
func (mode Mode) IsTimer() bool {
	return mode == ModeEMOM || mode == ModeAMRAP
}

// DurationKey returns the round duration key for a timer mode.
func (mode Mode) DurationKey() SettingKey {
	return SettingKey(string(mode) + "Duration")
}

// RoundsKey returns the round count key for a timer mode.
func (mode Mode) RoundsKey() SettingKey {
	return SettingKey(string(mode) + "Rounds")
}

// TotalID returns the name of the element that shows the mode total.
func (mode Mode) TotalID() string {
	return string(mode) + "Total"
}

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Modes {
		if mode == known {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", value)
}

// IsDuration reports whether the setting stores seconds shown as minutes.
func (key SettingKey) IsDuration() bool {
	return strings.Contains(string(key), "Duration")
}

// DisplayValue renders a stored value the way the settings panels show it.
// Durations are shown in minutes, fractional minutes without trailing zeros.
func (key SettingKey) DisplayValue(value int) string {
	if key.IsDuration() {
		return strconv.FormatFloat(float64(value)/60, 'f', -1, 64)
	}
	return strconv.Itoa(value)
}

// Values maps setting keys to their value.
type Values map[SettingKey]int

// Defaults maps each mode to its default values.
type Defaults map[Mode]Values

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Defaults {
	return Defaults{
		ModeEMOM: {
			KeyEMOMDuration: 60,
			KeyEMOMRounds:   8,
		},
		ModeAMRAP: {
			KeyAMRAPDuration: 600,
		},
		ModeConfig: {
			KeyCountIn: 5,
			KeyVolume:  30,
		},
	}
}

// Clone returns a deep copy.
func (defaults Defaults) Clone() Defaults {
	cloned := make(Defaults, len(defaults))
	for mode, values := range defaults {
		copied := make(Values, len(values))
		for key, value := range values {
			copied[key] = value
		}
		cloned[mode] = copied
	}
	return cloned
}

// FormatClock renders seconds as minutes:seconds with zero-padded seconds.
func FormatClock(totalSeconds int) string {
	minutes, seconds := SplitClock(totalSeconds)
	return minutes + ":" + seconds
}

// SplitClock returns the minutes and zero-padded seconds parts.
func SplitClock(totalSeconds int) (string, string) {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return strconv.Itoa(totalSeconds / 60), fmt.Sprintf("%02d", totalSeconds%60)
}
