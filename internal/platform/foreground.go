package platform

import "sync"

// ForegroundNotifier fans out "became active" notifications to registered callbacks.
type ForegroundNotifier struct {
	mu        sync.Mutex
	nextID    int
	callbacks map[int]func()
}

// NewForegroundNotifier returns a notifier with no registrations.
func NewForegroundNotifier() *ForegroundNotifier {
	return &ForegroundNotifier{callbacks: make(map[int]func())}
}

// OnForeground registers fn and returns its deregistration.
func (notifier *ForegroundNotifier) OnForeground(fn func()) func() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	id := notifier.nextID
	notifier.nextID++
	notifier.callbacks[id] = fn
	return func() {
		notifier.mu.Lock()
		delete(notifier.callbacks, id)
		notifier.mu.Unlock()
	}
}

// Notify invokes every registered callback.
func (notifier *ForegroundNotifier) Notify() {
	notifier.mu.Lock()
	callbacks := make([]func(), 0, len(notifier.callbacks))
	for _, fn := range notifier.callbacks {
		callbacks = append(callbacks, fn)
	}
	notifier.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
