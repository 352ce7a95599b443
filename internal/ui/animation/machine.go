package animation

import (
	"sort"
	"sync"
)

// Machine is the named-binding surface an animation is driven through:
// boolean inputs, string outputs and fire-and-forget triggers.
type Machine struct {
	mu       sync.Mutex
	name     string
	ready    bool
	inputs   map[string]bool
	outputs  map[string]string
	triggers map[string]map[int]func()
	watchers map[int]chan struct{}
	nextID   int
}

// Frame is a copy of every binding value at one point in time.
type Frame struct {
	Ready   bool
	Inputs  map[string]bool
	Outputs map[string]string
}

// Input returns a boolean input, false when never written.
func (frame Frame) Input(name string) bool {
	return frame.Inputs[name]
}

// Output returns a string output, empty when never written.
func (frame Frame) Output(name string) string {
	return frame.Outputs[name]
}

// NewMachine creates a machine that is not ready yet.
func NewMachine(name string) *Machine {
	return &Machine{
		name:     name,
		inputs:   map[string]bool{},
		outputs:  map[string]string{},
		triggers: map[string]map[int]func(){},
		watchers: map[int]chan struct{}{},
	}
}

// Name returns the machine name.
func (machine *Machine) Name() string {
	return machine.name
}

// Ready reports whether the renderer finished loading.
func (machine *Machine) Ready() bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.ready
}

// SetReady marks the renderer as loaded or torn down.
func (machine *Machine) SetReady(ready bool) {
	machine.mu.Lock()
	changed := machine.ready != ready
	machine.ready = ready
	machine.mu.Unlock()
	if changed {
		machine.notify()
	}
}

// SetBool writes a boolean input.
func (machine *Machine) SetBool(name string, value bool) {
	machine.mu.Lock()
	previous, ok := machine.inputs[name]
	machine.inputs[name] = value
	machine.mu.Unlock()
	if !ok || previous != value {
		machine.notify()
	}
}

// SetString writes a string output.
func (machine *Machine) SetString(name, value string) {
	machine.mu.Lock()
	previous, ok := machine.outputs[name]
	machine.outputs[name] = value
	machine.mu.Unlock()
	if !ok || previous != value {
		machine.notify()
	}
}

// Input reads a boolean input.
func (machine *Machine) Input(name string) bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.inputs[name]
}

// Output reads a string output.
func (machine *Machine) Output(name string) string {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.outputs[name]
}

// Snapshot copies every binding.
func (machine *Machine) Snapshot() Frame {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	frame := Frame{
		Ready:   machine.ready,
		Inputs:  make(map[string]bool, len(machine.inputs)),
		Outputs: make(map[string]string, len(machine.outputs)),
	}
	for name, value := range machine.inputs {
		frame.Inputs[name] = value
	}
	for name, value := range machine.outputs {
		frame.Outputs[name] = value
	}
	return frame
}

// OnTrigger registers fn for the named trigger. The returned function removes
// the registration and is safe to call more than once.
func (machine *Machine) OnTrigger(name string, fn func()) func() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.nextID++
	id := machine.nextID
	if machine.triggers[name] == nil {
		machine.triggers[name] = map[int]func(){}
	}
	machine.triggers[name][id] = fn
	return func() {
		machine.mu.Lock()
		defer machine.mu.Unlock()
		delete(machine.triggers[name], id)
	}
}

// Fire invokes every handler of the named trigger in registration order and
// returns how many ran. Handlers run without the machine lock held.
func (machine *Machine) Fire(name string) int {
	machine.mu.Lock()
	ids := make([]int, 0, len(machine.triggers[name]))
	for id := range machine.triggers[name] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, machine.triggers[name][id])
	}
	machine.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
	return len(handlers)
}

// Watch returns a channel signalled after binding changes. Signals coalesce,
// so a receiver should read a fresh Snapshot on every wakeup.
func (machine *Machine) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	machine.mu.Lock()
	machine.nextID++
	id := machine.nextID
	machine.watchers[id] = ch
	machine.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			machine.mu.Lock()
			delete(machine.watchers, id)
			machine.mu.Unlock()
		})
	}
}

func (machine *Machine) notify() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	for _, ch := range machine.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
