package platform

// KeepAwake holds the device awake while acquired. Acquire and Release are
// idempotent.
type KeepAwake interface {
	Acquire() error
	Release() error
}

// NewKeepAwake returns a platform-specific keep-awake request.
func NewKeepAwake(appName string) KeepAwake {
	return newKeepAwake(appName)
}

type noopKeepAwake struct{}

func (noopKeepAwake) Acquire() error { return nil }
func (noopKeepAwake) Release() error { return nil }

// NoopKeepAwake returns a KeepAwake that does nothing.
func NoopKeepAwake() KeepAwake {
	return noopKeepAwake{}
}
