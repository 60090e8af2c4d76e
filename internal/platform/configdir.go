package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the per-application configuration directory, falling
// back to ~/.config when the OS has no standard location.
func ConfigDir(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("config dir: app name is empty")
	}
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
		return "", fmt.Errorf("config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}
