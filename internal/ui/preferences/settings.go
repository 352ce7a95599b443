package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration
	SettleDelay   time.Duration
	ResumeDelay   time.Duration

	KeepAwake      bool
	ResumeOnLaunch bool

	// StorageBackend selects the persistence backend; empty selects sqlite.
	StorageBackend string
	StoragePath    string

	LogLevel string
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:   model.DefaultWorkDuration,
		BreakDuration:  model.DefaultBreakDuration,
		SettleDelay:    model.DefaultSettleDelay,
		ResumeDelay:    model.DefaultResumeDelay,
		KeepAwake:      true,
		ResumeOnLaunch: true,
		LogLevel:       "info",
	}
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkDuration:   settings.WorkDuration,
		BreakDuration:  settings.BreakDuration,
		TickInterval:   model.DefaultTickInterval,
		SettleDelay:    settings.SettleDelay,
		ResumeDelay:    settings.ResumeDelay,
		StorageTimeout: model.DefaultStorageTimeout,
		KeepAwake:      settings.KeepAwake,
		ResumeOnLaunch: settings.ResumeOnLaunch,
	}.Normalize()
}
