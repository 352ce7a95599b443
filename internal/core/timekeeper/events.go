package timekeeper

import (
	"time"

	"pomodoro/internal/core/countdown"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventProgress     EventType = "progress"
	EventStorageError EventType = "storage_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Phase     countdown.Phase
	Mode      countdown.Mode
	Remaining time.Duration
	Progress  float64
	Message   string
	At        time.Time
}
