package countdown

import "time"

// Mode names which duration applies to the current segment.
type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
)

func (mode Mode) String() string {
	switch mode {
	case ModeWork:
		return "work"
	case ModeBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows this one.
func (mode Mode) Next() Mode {
	if mode == ModeWork {
		return ModeBreak
	}
	return ModeWork
}

// Phase is the lifecycle position of the countdown.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseSwitching
	PhaseStopped
)

func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseSwitching:
		return "switching"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Durations holds the length of each mode in whole seconds.
type Durations struct {
	Work  int
	Break int
}

// NewDurations converts mode lengths to whole seconds.
func NewDurations(work, brk time.Duration) Durations {
	return Durations{
		Work:  int(work / time.Second),
		Break: int(brk / time.Second),
	}
}

// For returns the duration of mode in seconds.
func (durations Durations) For(mode Mode) int {
	if mode == ModeBreak {
		return durations.Break
	}
	return durations.Work
}

// ModeForDuration infers the mode a persisted duration was written for.
// Ambiguous durations resolve to work.
func (durations Durations) ModeForDuration(seconds int) Mode {
	if seconds == durations.Break && seconds != durations.Work {
		return ModeBreak
	}
	return ModeWork
}

// State is the in-memory countdown. The zero value is the idle process-start state.
//
// Transitions return a new value and leave the receiver untouched. A
// transition invoked from a phase where it does not apply returns the state
// unchanged.
type State struct {
	Phase     Phase
	Mode      Mode
	Remaining int
	// Target is the mode being switched to while Phase is PhaseSwitching.
	Target Mode
}

// Running reports whether a countdown cycle is active.
func (state State) Running() bool {
	return state.Phase == PhaseRunning || state.Phase == PhaseSwitching
}

// Stopped reports whether the countdown was explicitly stopped.
func (state State) Stopped() bool {
	return state.Phase == PhaseStopped
}

// Play starts a fresh work segment.
func (state State) Play(durations Durations) State {
	if state.Running() {
		return state
	}
	return State{
		Phase:     PhaseRunning,
		Mode:      ModeWork,
		Remaining: durations.Work,
	}
}

// Stop ends the cycle. Stopped is sticky until the next Play. Mode is kept
// rather than reset to break; Play always starts over in work.
func (state State) Stop() State {
	state.Phase = PhaseStopped
	state.Remaining = 0
	state.Target = state.Mode
	return state
}

// Tick consumes one second.
func (state State) Tick() State {
	if state.Phase != PhaseRunning {
		return state
	}
	if state.Remaining > 0 {
		state.Remaining--
	}
	return state
}

// Restore replaces the remaining time with a wall-clock recomputation,
// clamped to the current mode's duration.
func (state State) Restore(remaining int, durations Durations) State {
	if state.Phase != PhaseRunning {
		return state
	}
	limit := durations.For(state.Mode)
	if remaining > limit {
		remaining = limit
	}
	if remaining < 0 {
		remaining = 0
	}
	state.Remaining = remaining
	return state
}

// BeginSwitch enters PhaseSwitching once the countdown has reached zero.
// It reports false when no switch started, which includes a switch already
// in progress.
func (state State) BeginSwitch() (State, bool) {
	if state.Phase != PhaseRunning || state.Remaining > 0 {
		return state, false
	}
	state.Phase = PhaseSwitching
	state.Target = state.Mode.Next()
	return state, true
}

// CommitSwitch flips to the target mode with its full duration.
func (state State) CommitSwitch(durations Durations) State {
	if state.Phase != PhaseSwitching || state.Mode == state.Target {
		return state
	}
	state.Mode = state.Target
	state.Remaining = durations.For(state.Mode)
	return state
}

// Resume leaves PhaseSwitching once the new mode is committed.
func (state State) Resume() State {
	if state.Phase != PhaseSwitching || state.Mode != state.Target {
		return state
	}
	state.Phase = PhaseRunning
	return state
}

// Rehydrate rebuilds a running state from a persisted record.
func Rehydrate(record Record, now time.Time, durations Durations) State {
	mode := durations.ModeForDuration(record.Duration)
	state := State{Phase: PhaseRunning, Mode: mode, Target: mode}
	return state.Restore(record.RemainingAt(now), durations)
}
