package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWakeLockUnsupported indicates the display cannot be kept awake here.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

// ConfigDir returns the directory holding the application's files,
// falling back to an OS-specific path under the home directory.
func ConfigDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(fallbackConfigDir(homeDir), appName), nil
}
