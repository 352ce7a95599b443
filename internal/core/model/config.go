package model

import "time"

// Default timer values.
const (
	DefaultWorkDuration   = 45 * time.Minute
	DefaultBreakDuration  = 15 * time.Minute
	DefaultTickInterval   = time.Second
	DefaultSettleDelay    = 700 * time.Millisecond
	DefaultResumeDelay    = 200 * time.Millisecond
	DefaultStorageTimeout = 2 * time.Second
)

// TimerConfig contains runtime settings for the countdown coordinator.
type TimerConfig struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration

	// TickInterval is the period of the countdown tick.
	TickInterval time.Duration
	// SettleDelay is the pause between reaching zero and committing the next mode.
	SettleDelay time.Duration
	// ResumeDelay is the pause between committing the next mode and re-arming the tick.
	ResumeDelay time.Duration

	StorageTimeout time.Duration
	KeepAwake      bool
	ResumeOnLaunch bool
}

// DefaultTimerConfig returns the stock 45/15 configuration.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkDuration:   DefaultWorkDuration,
		BreakDuration:  DefaultBreakDuration,
		TickInterval:   DefaultTickInterval,
		SettleDelay:    DefaultSettleDelay,
		ResumeDelay:    DefaultResumeDelay,
		StorageTimeout: DefaultStorageTimeout,
		KeepAwake:      true,
		ResumeOnLaunch: true,
	}
}

// Normalize replaces unset or invalid values with defaults.
func (config TimerConfig) Normalize() TimerConfig {
	if config.WorkDuration < time.Second {
		config.WorkDuration = DefaultWorkDuration
	}
	if config.BreakDuration < time.Second {
		config.BreakDuration = DefaultBreakDuration
	}
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.SettleDelay < 0 {
		config.SettleDelay = DefaultSettleDelay
	}
	if config.ResumeDelay < 0 {
		config.ResumeDelay = DefaultResumeDelay
	}
	if config.StorageTimeout <= 0 {
		config.StorageTimeout = DefaultStorageTimeout
	}
	return config
}
