package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stock = Durations{Work: 2700, Break: 900}

func TestPlayStartsWorkFromIdleAndStopped(t *testing.T) {
	for _, from := range []State{{}, (State{}).Play(stock).Stop()} {
		state := from.Play(stock)
		assert.Equal(t, PhaseRunning, state.Phase)
		assert.Equal(t, ModeWork, state.Mode)
		assert.Equal(t, 2700, state.Remaining)
		assert.True(t, state.Running())
		assert.False(t, state.Stopped())
	}
}

func TestPlayWhileRunningIsIgnored(t *testing.T) {
	state := (State{}).Play(stock).Tick().Tick()
	assert.Equal(t, state, state.Play(stock))
}

func TestTicksAreMonotonicAndStopAtZero(t *testing.T) {
	state := (State{}).Play(Durations{Work: 5, Break: 3})
	previous := state.Remaining
	for i := 0; i < 20; i++ {
		state = state.Tick()
		require.LessOrEqual(t, state.Remaining, previous)
		require.GreaterOrEqual(t, state.Remaining, 0)
		previous = state.Remaining
	}
	assert.Equal(t, 0, state.Remaining)
}

func TestWorkScenarioReachesOneAfter2699Ticks(t *testing.T) {
	state := (State{}).Play(stock)
	for i := 0; i < 2699; i++ {
		state = state.Tick()
	}
	assert.Equal(t, 1, state.Remaining)
	state = state.Tick()
	assert.Equal(t, 0, state.Remaining)

	state, ok := state.BeginSwitch()
	require.True(t, ok)
	state = state.CommitSwitch(stock).Resume()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, 900, state.Remaining)
	assert.Equal(t, PhaseRunning, state.Phase)
}

func TestStopIsAbsorbing(t *testing.T) {
	state := (State{}).Play(stock).Tick().Stop()
	require.Equal(t, PhaseStopped, state.Phase)
	require.Equal(t, 0, state.Remaining)

	state = state.Tick().Restore(1200, stock)
	assert.Equal(t, 0, state.Remaining)
	_, ok := state.BeginSwitch()
	assert.False(t, ok)
	assert.Equal(t, state, state.CommitSwitch(stock).Resume())
}

func TestStopKeepsModeAndPlayRestartsWork(t *testing.T) {
	state, _ := (State{}).Play(stock).Restore(0, stock).BeginSwitch()
	state = state.CommitSwitch(stock).Resume().Stop()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, ModeWork, state.Play(stock).Mode)
}

func TestBeginSwitchRequiresZeroAndIsNotReentrant(t *testing.T) {
	state := (State{}).Play(stock)
	_, ok := state.BeginSwitch()
	assert.False(t, ok, "remaining time left")

	state = state.Restore(0, stock)
	switching, ok := state.BeginSwitch()
	require.True(t, ok)
	assert.Equal(t, PhaseSwitching, switching.Phase)
	assert.Equal(t, ModeBreak, switching.Target)

	again, ok := switching.BeginSwitch()
	assert.False(t, ok)
	assert.Equal(t, switching, again)
	assert.Equal(t, switching, switching.Tick())
	assert.Equal(t, switching, switching.Restore(10, stock))
}

func TestCommitAndResumeApplyOnce(t *testing.T) {
	state, _ := (State{}).Play(stock).Restore(0, stock).BeginSwitch()
	committed := state.CommitSwitch(stock)
	assert.Equal(t, committed, committed.CommitSwitch(stock))
	resumed := committed.Resume()
	assert.Equal(t, resumed, resumed.Resume())
	assert.Equal(t, PhaseRunning, resumed.Phase)
}

func TestModesAlternate(t *testing.T) {
	durations := Durations{Work: 2, Break: 1}
	state := (State{}).Play(durations)
	modes := []Mode{state.Mode}
	for len(modes) < 7 {
		state = state.Tick()
		if switching, ok := state.BeginSwitch(); ok {
			state = switching.CommitSwitch(durations).Resume()
			modes = append(modes, state.Mode)
		}
	}
	for i := 1; i < len(modes); i++ {
		assert.NotEqual(t, modes[i-1], modes[i], "index %d", i)
	}
	assert.Equal(t, ModeWork, modes[0])
	assert.Equal(t, ModeBreak, modes[1])
}

func TestRestoreClampsToModeDuration(t *testing.T) {
	state := (State{}).Play(stock)
	assert.Equal(t, 2700, state.Restore(5000, stock).Remaining)
	assert.Equal(t, 0, state.Restore(-4, stock).Remaining)
	assert.Equal(t, 1700, state.Restore(1700, stock).Remaining)
	assert.Equal(t, State{}, (State{}).Restore(1700, stock))
}

func TestRehydrateInfersMode(t *testing.T) {
	start := time.UnixMilli(0)
	state := Rehydrate(NewRecord(start, 2700), start.Add(1000*time.Second), stock)
	assert.Equal(t, State{Phase: PhaseRunning, Mode: ModeWork, Remaining: 1700, Target: ModeWork}, state)

	state = Rehydrate(NewRecord(start, 900), start.Add(100*time.Second), stock)
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, 800, state.Remaining)

	same := Durations{Work: 60, Break: 60}
	assert.Equal(t, ModeWork, same.ModeForDuration(60))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "work", ModeWork.String())
	assert.Equal(t, "break", ModeBreak.String())
	assert.Equal(t, "switching", PhaseSwitching.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.Equal(t, ModeWork, ModeBreak.Next())
}

func TestNewDurations(t *testing.T) {
	assert.Equal(t, stock, NewDurations(45*time.Minute, 15*time.Minute))
}
