package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/timekeeper"
)

var _ timekeeper.Surface = (*Machine)(nil)

func TestMachineBindings(t *testing.T) {
	machine := NewMachine("countdown")
	assert.Equal(t, "countdown", machine.Name())
	assert.False(t, machine.Ready())

	machine.SetBool(timekeeper.InputBreak, true)
	machine.SetString(timekeeper.OutputWorkMinutes, "45")
	assert.True(t, machine.Input(timekeeper.InputBreak))
	assert.Equal(t, "45", machine.Output(timekeeper.OutputWorkMinutes))
	assert.Empty(t, machine.Output(timekeeper.OutputBreakSeconds))

	frame := machine.Snapshot()
	machine.SetString(timekeeper.OutputWorkMinutes, "44")
	assert.Equal(t, "45", frame.Output(timekeeper.OutputWorkMinutes), "snapshot is a copy")
	assert.True(t, frame.Input(timekeeper.InputBreak))
}

func TestMachineTriggersRunInOrderAndCancel(t *testing.T) {
	machine := NewMachine("countdown")
	var calls []string
	cancelFirst := machine.OnTrigger(timekeeper.TriggerPlay, func() { calls = append(calls, "first") })
	machine.OnTrigger(timekeeper.TriggerPlay, func() { calls = append(calls, "second") })

	assert.Equal(t, 2, machine.Fire(timekeeper.TriggerPlay))
	assert.Equal(t, []string{"first", "second"}, calls)

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, machine.Fire(timekeeper.TriggerPlay))
	assert.Equal(t, 0, machine.Fire(timekeeper.TriggerStop))
}

func TestMachineHandlersMayWriteBindings(t *testing.T) {
	machine := NewMachine("countdown")
	machine.OnTrigger(timekeeper.TriggerStop, func() {
		machine.SetBool(timekeeper.InputBreak, false)
	})
	require.Equal(t, 1, machine.Fire(timekeeper.TriggerStop))
	assert.False(t, machine.Input(timekeeper.InputBreak))
}

func TestMachineWatchCoalescesChanges(t *testing.T) {
	machine := NewMachine("countdown")
	changes, cancel := machine.Watch()

	machine.SetReady(true)
	machine.SetString(timekeeper.OutputWorkSeconds, "59")
	machine.SetString(timekeeper.OutputWorkSeconds, "58")
	require.Len(t, changes, 1)
	<-changes

	machine.SetString(timekeeper.OutputWorkSeconds, "58")
	assert.Len(t, changes, 0, "unchanged value does not notify")

	cancel()
	cancel()
	machine.SetString(timekeeper.OutputWorkSeconds, "57")
	assert.Len(t, changes, 0)
	assert.True(t, machine.Snapshot().Ready)
}
