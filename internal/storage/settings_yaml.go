// Package storage persists user preferences as YAML.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/platform"
	"apneatimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Discipline           string  `yaml:"discipline"`
	SoundEnabled         *bool   `yaml:"sound_enabled"`
	MasterVolume         float64 `yaml:"master_volume"`
	NotificationsEnabled *bool   `yaml:"notifications_enabled"`
	LogLevel             string  `yaml:"log_level"`
	MetricsAddr          string  `yaml:"metrics_addr"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

// LoadSettings reads user preferences for appName.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	path, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(path)
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, settings preferences.Settings) error {
	path, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(path, settings)
}

// LoadSettingsFile reads preferences from path. Invalid fields keep their
// default values.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to path, creating parent directories.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	notificationsEnabled := settings.NotificationsEnabled
	fileData := yamlSettings{
		Discipline:           string(settings.Discipline),
		SoundEnabled:         &soundEnabled,
		MasterVolume:         settings.MasterVolume,
		NotificationsEnabled: &notificationsEnabled,
		LogLevel:             settings.LogLevel,
		MetricsAddr:          settings.MetricsAddr,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if code, err := discipline.Parse(fileData.Discipline); err == nil {
		settings.Discipline = code
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if preferences.ValidVolume(fileData.MasterVolume) {
		settings.MasterVolume = fileData.MasterVolume
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if preferences.ValidLogLevel(fileData.LogLevel) {
		settings.LogLevel = fileData.LogLevel
	}
	settings.MetricsAddr = fileData.MetricsAddr
}
