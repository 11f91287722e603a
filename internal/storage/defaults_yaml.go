package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"intervals/internal/core/model"
	"intervals/internal/platform"

	"gopkg.in/yaml.v3"
)

const defaultsFileName = "settings.yaml"

// ErrInvalidDefaults indicates the defaults file is not valid YAML.
var ErrInvalidDefaults = errors.New("invalid defaults file")

type yamlDefaults struct {
	EMOM   *yamlEMOM   `yaml:"emom,omitempty"`
	AMRAP  *yamlAMRAP  `yaml:"amrap,omitempty"`
	Config *yamlConfig `yaml:"config,omitempty"`
}

type yamlEMOM struct {
	DurationSeconds *int `yaml:"duration_seconds,omitempty"`
	Rounds          *int `yaml:"rounds,omitempty"`
}

type yamlAMRAP struct {
	DurationSeconds *int `yaml:"duration_seconds,omitempty"`
}

type yamlConfig struct {
	CountInSeconds *int `yaml:"count_in_seconds,omitempty"`
	VolumePercent  *int `yaml:"volume_percent,omitempty"`
}

// DefaultPath returns the defaults file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve defaults path: %w", err)
	}
	return filepath.Join(configDir, defaultsFileName), nil
}

// LoadDefaults reads workout defaults from YAML. A missing file yields the
// built-in defaults; fields out of range keep their built-in value.
func LoadDefaults(path string) (model.Defaults, error) {
	defaults := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("read defaults file: %w", err)
	}

	var fileData yamlDefaults
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return defaults, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidDefaults, err)
	}

	applyYamlDefaults(defaults, fileData)
	return defaults, nil
}

// SaveDefaults writes defaults to path, creating its directory.
func SaveDefaults(path string, defaults model.Defaults) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYaml(defaults))
	if err != nil {
		return fmt.Errorf("marshal defaults yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write defaults file: %w", err)
	}
	return nil
}

func applyYamlDefaults(defaults model.Defaults, fileData yamlDefaults) {
	if emom := fileData.EMOM; emom != nil {
		setPositive(defaults[model.ModeEMOM], model.KeyEMOMDuration, emom.DurationSeconds)
		setPositive(defaults[model.ModeEMOM], model.KeyEMOMRounds, emom.Rounds)
	}
	if amrap := fileData.AMRAP; amrap != nil {
		setPositive(defaults[model.ModeAMRAP], model.KeyAMRAPDuration, amrap.DurationSeconds)
	}
	if config := fileData.Config; config != nil {
		setPositive(defaults[model.ModeConfig], model.KeyCountIn, config.CountInSeconds)
		if volume := config.VolumePercent; volume != nil && *volume >= 0 && *volume <= model.MaxVolume {
			defaults[model.ModeConfig][model.KeyVolume] = *volume
		}
	}
}

func setPositive(values model.Values, key model.SettingKey, value *int) {
	if value != nil && *value > 0 {
		values[key] = *value
	}
}

func toYaml(defaults model.Defaults) yamlDefaults {
	intRef := func(mode model.Mode, key model.SettingKey) *int {
		value, ok := defaults[mode][key]
		if !ok {
			return nil
		}
		return &value
	}
	return yamlDefaults{
		EMOM: &yamlEMOM{
			DurationSeconds: intRef(model.ModeEMOM, model.KeyEMOMDuration),
			Rounds:          intRef(model.ModeEMOM, model.KeyEMOMRounds),
		},
		AMRAP: &yamlAMRAP{
			DurationSeconds: intRef(model.ModeAMRAP, model.KeyAMRAPDuration),
		},
		Config: &yamlConfig{
			CountInSeconds: intRef(model.ModeConfig, model.KeyCountIn),
			VolumePercent:  intRef(model.ModeConfig, model.KeyVolume),
		},
	}
}
