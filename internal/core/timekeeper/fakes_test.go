package timekeeper

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// manualClock fires timers only when the test advances it.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock    *manualClock
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
}

func newManualClock(start time.Time) *manualClock {
	return &manualClock{now: start}
}

func (clock *manualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *manualClock) AfterFunc(d time.Duration, fn func()) Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.seq++
	timer := &manualTimer{clock: clock, deadline: clock.now.Add(d), seq: clock.seq, fn: fn}
	clock.timers = append(clock.timers, timer)
	return timer
}

func (timer *manualTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	wasActive := !timer.stopped
	timer.stopped = true
	return wasActive
}

// Advance moves time forward, firing due timers in deadline order.
func (clock *manualClock) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(d)
	clock.mu.Unlock()

	for {
		timer := clock.nextDue(target)
		if timer == nil {
			break
		}
		timer.fn()
	}

	clock.mu.Lock()
	clock.now = target
	clock.mu.Unlock()
}

// Jump moves time forward without firing anything, as during a suspension.
func (clock *manualClock) Jump(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

// Active counts timers that are scheduled and not stopped.
func (clock *manualClock) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, timer := range clock.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

func (clock *manualClock) nextDue(target time.Time) *manualTimer {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	live := clock.timers[:0]
	for _, timer := range clock.timers {
		if !timer.stopped {
			live = append(live, timer)
		}
	}
	clock.timers = live
	sort.SliceStable(clock.timers, func(i, j int) bool {
		if clock.timers[i].deadline.Equal(clock.timers[j].deadline) {
			return clock.timers[i].seq < clock.timers[j].seq
		}
		return clock.timers[i].deadline.Before(clock.timers[j].deadline)
	})
	if len(clock.timers) == 0 || clock.timers[0].deadline.After(target) {
		return nil
	}
	timer := clock.timers[0]
	timer.stopped = true
	if timer.deadline.After(clock.now) {
		clock.now = timer.deadline
	}
	return timer
}

type fakeSurface struct {
	mu       sync.Mutex
	ready    bool
	bools    map[string]bool
	strings  map[string]string
	writes   map[string]int
	nextID   int
	triggers map[string]map[int]func()
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		ready:    true,
		bools:    map[string]bool{},
		strings:  map[string]string{},
		writes:   map[string]int{},
		triggers: map[string]map[int]func(){},
	}
}

func (surface *fakeSurface) SetBool(name string, value bool) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.bools[name] = value
	surface.writes[name]++
}

func (surface *fakeSurface) SetString(name, value string) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.strings[name] = value
	surface.writes[name]++
}

func (surface *fakeSurface) OnTrigger(name string, fn func()) func() {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.nextID++
	id := surface.nextID
	if surface.triggers[name] == nil {
		surface.triggers[name] = map[int]func(){}
	}
	surface.triggers[name][id] = fn
	return func() {
		surface.mu.Lock()
		defer surface.mu.Unlock()
		delete(surface.triggers[name], id)
	}
}

func (surface *fakeSurface) Ready() bool {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return surface.ready
}

func (surface *fakeSurface) setReady(ready bool) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.ready = ready
}

func (surface *fakeSurface) fire(name string) int {
	surface.mu.Lock()
	handlers := make([]func(), 0, len(surface.triggers[name]))
	for _, fn := range surface.triggers[name] {
		handlers = append(handlers, fn)
	}
	surface.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
	return len(handlers)
}

func (surface *fakeSurface) text(name string) string {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return surface.strings[name]
}

func (surface *fakeSurface) flag(name string) bool {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return surface.bools[name]
}

func (surface *fakeSurface) writeCount(name string) int {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return surface.writes[name]
}

var errUnavailable = errors.New("store unavailable")

type mapStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	fail    bool
	// failSet fails writes only.
	failSet bool
}

func newMapStore() *mapStore {
	return &mapStore{values: map[string][]byte{}}
}

func (store *mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.fail {
		return nil, false, errUnavailable
	}
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *mapStore) Set(_ context.Context, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.fail || store.failSet {
		return errUnavailable
	}
	store.values[key] = append([]byte(nil), value...)
	return nil
}

func (store *mapStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.fail {
		return errUnavailable
	}
	delete(store.values, key)
	return nil
}

func (store *mapStore) raw(key string) ([]byte, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok
}

func (store *mapStore) put(key string, value []byte) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
}

type fakeKeepAwake struct {
	mu       sync.Mutex
	held     bool
	acquires int
	releases int
}

func (awake *fakeKeepAwake) Acquire() error {
	awake.mu.Lock()
	defer awake.mu.Unlock()
	awake.held = true
	awake.acquires++
	return nil
}

func (awake *fakeKeepAwake) Release() error {
	awake.mu.Lock()
	defer awake.mu.Unlock()
	awake.held = false
	awake.releases++
	return nil
}

func (awake *fakeKeepAwake) isHeld() bool {
	awake.mu.Lock()
	defer awake.mu.Unlock()
	return awake.held
}

type fakeLifecycle struct {
	mu        sync.Mutex
	callbacks map[int]func()
	nextID    int
}

func (lifecycle *fakeLifecycle) OnForeground(fn func()) func() {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	if lifecycle.callbacks == nil {
		lifecycle.callbacks = map[int]func(){}
	}
	lifecycle.nextID++
	id := lifecycle.nextID
	lifecycle.callbacks[id] = fn
	return func() {
		lifecycle.mu.Lock()
		defer lifecycle.mu.Unlock()
		delete(lifecycle.callbacks, id)
	}
}

func (lifecycle *fakeLifecycle) foreground() int {
	lifecycle.mu.Lock()
	callbacks := make([]func(), 0, len(lifecycle.callbacks))
	for _, fn := range lifecycle.callbacks {
		callbacks = append(callbacks, fn)
	}
	lifecycle.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
	return len(callbacks)
}
