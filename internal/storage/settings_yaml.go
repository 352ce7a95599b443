package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	maxSegmentMinutes = 24 * 60
	maxDelayMillis    = 10_000
)

type yamlSettings struct {
	WorkMinutes    int    `yaml:"work_minutes,omitempty"`
	BreakMinutes   int    `yaml:"break_minutes,omitempty"`
	SettleDelayMs  *int   `yaml:"settle_delay_ms,omitempty"`
	ResumeDelayMs  *int   `yaml:"resume_delay_ms,omitempty"`
	KeepAwake      *bool  `yaml:"keep_awake,omitempty"`
	ResumeOnLaunch *bool  `yaml:"resume_on_launch,omitempty"`
	StorageBackend string `yaml:"storage_backend,omitempty"`
	StoragePath    string `yaml:"storage_path,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// SettingsPath returns the default settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
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

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settleMs := int(settings.SettleDelay / time.Millisecond)
	resumeMs := int(settings.ResumeDelay / time.Millisecond)
	keepAwake := settings.KeepAwake
	resumeOnLaunch := settings.ResumeOnLaunch
	fileData := yamlSettings{
		WorkMinutes:    int(settings.WorkDuration / time.Minute),
		BreakMinutes:   int(settings.BreakDuration / time.Minute),
		SettleDelayMs:  &settleMs,
		ResumeDelayMs:  &resumeMs,
		KeepAwake:      &keepAwake,
		ResumeOnLaunch: &resumeOnLaunch,
		StorageBackend: settings.StorageBackend,
		StoragePath:    settings.StoragePath,
		LogLevel:       settings.LogLevel,
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
	if fileData.WorkMinutes > 0 && fileData.WorkMinutes <= maxSegmentMinutes {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 && fileData.BreakMinutes <= maxSegmentMinutes {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if value := fileData.SettleDelayMs; value != nil && *value >= 0 && *value <= maxDelayMillis {
		settings.SettleDelay = time.Duration(*value) * time.Millisecond
	}
	if value := fileData.ResumeDelayMs; value != nil && *value >= 0 && *value <= maxDelayMillis {
		settings.ResumeDelay = time.Duration(*value) * time.Millisecond
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
	if fileData.ResumeOnLaunch != nil {
		settings.ResumeOnLaunch = *fileData.ResumeOnLaunch
	}
	switch fileData.StorageBackend {
	case BackendMemory, BackendFile, BackendSQLite, BackendPreferences:
		settings.StorageBackend = fileData.StorageBackend
	}
	if fileData.StoragePath != "" {
		settings.StoragePath = fileData.StoragePath
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
