package timekeeper

import (
	"context"
	"time"
)

// Binding names on the animation surface.
const (
	InputBreak = "break"

	OutputWorkMinutes  = "workMinutes"
	OutputWorkSeconds  = "workSeconds"
	OutputBreakMinutes = "breakMinutes"
	OutputBreakSeconds = "breakSeconds"

	TriggerPlay = "triggPlay"
	TriggerStop = "triggStop"
)

// Surface is the animation surface the countdown is displayed on.
type Surface interface {
	SetBool(name string, value bool)
	SetString(name, value string)
	// OnTrigger registers fn for a named trigger and returns its deregistration.
	OnTrigger(name string, fn func()) (cancel func())
	// Ready reports whether bindings can be written.
	Ready() bool
}

// Store durably keeps the countdown record.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KeepAwake holds the device awake while acquired.
type KeepAwake interface {
	Acquire() error
	Release() error
}

// Lifecycle delivers "became active" notifications.
type Lifecycle interface {
	OnForeground(fn func()) (cancel func())
}

// Clock abstracts wall-clock reads and one-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

// SystemClock returns the real clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type detachedSurface struct{}

func (detachedSurface) SetBool(string, bool) {}
func (detachedSurface) SetString(string, string) {}
func (detachedSurface) OnTrigger(string, func()) func() { return func() {} }
func (detachedSurface) Ready() bool { return false }

type emptyStore struct{}

func (emptyStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (emptyStore) Set(context.Context, string, []byte) error { return nil }
func (emptyStore) Delete(context.Context, string) error { return nil }

type noopKeepAwake struct{}

func (noopKeepAwake) Acquire() error { return nil }
func (noopKeepAwake) Release() error { return nil }
