package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/animation"
)

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func newTestModel(t *testing.T) (Model, *animation.Machine, *int) {
	t.Helper()
	machine := animation.NewMachine("countdown")
	machine.SetReady(true)
	changes, stop := machine.Watch()
	t.Cleanup(stop)
	foregrounds := 0
	model := NewModel(Options{
		Machine:    machine,
		Events:     make(chan timekeeper.Event, 1),
		Foreground: func() { foregrounds++ },
	}, changes)
	return model, machine, &foregrounds
}

func update(t *testing.T, model Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := model.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestKeysFireTriggers(t *testing.T) {
	model, machine, _ := newTestModel(t)
	var fired []string
	machine.OnTrigger(timekeeper.TriggerPlay, func() { fired = append(fired, "play") })
	machine.OnTrigger(timekeeper.TriggerStop, func() { fired = append(fired, "stop") })

	_, cmd := update(t, model, runes("p"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	_, cmd = update(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.NotNil(t, cmd)
	cmd()

	_, cmd = update(t, model, runes("s"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"play", "play", "stop"}, fired)
}

func TestQuitKey(t *testing.T) {
	model, _, _ := newTestModel(t)
	model, cmd := update(t, model, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, model.quitting)
	assert.Empty(t, model.View())
}

func TestFocusAndResumeNotifyForeground(t *testing.T) {
	model, _, foregrounds := newTestModel(t)
	_, cmd := update(t, model, tea.FocusMsg{})
	cmd()
	_, cmd = update(t, model, tea.ResumeMsg{})
	cmd()
	assert.Equal(t, 2, *foregrounds)
}

func TestViewFollowsMachine(t *testing.T) {
	model, machine, _ := newTestModel(t)
	machine.SetString(timekeeper.OutputWorkMinutes, "44")
	machine.SetString(timekeeper.OutputWorkSeconds, "59")
	model, _ = update(t, model, machineChangedMsg{})
	model, _ = update(t, model, eventMsg(timekeeper.Event{
		Type:  timekeeper.EventProgress,
		Phase: countdown.PhaseRunning,
		Mode:  countdown.ModeWork,
	}))
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 30})

	view := model.View()
	assert.Contains(t, view, "WORK")
	assert.Contains(t, view, "work 44:59")
	assert.Contains(t, view, "break --:--")
	assert.Contains(t, view, "running")
	assert.Equal(t, "44:59", model.clock(false))

	machine.SetBool(timekeeper.InputBreak, true)
	machine.SetString(timekeeper.OutputBreakMinutes, "15")
	machine.SetString(timekeeper.OutputBreakSeconds, "00")
	model, _ = update(t, model, machineChangedMsg{})
	model, _ = update(t, model, eventMsg(timekeeper.Event{
		Type:  timekeeper.EventStateChange,
		Phase: countdown.PhaseRunning,
		Mode:  countdown.ModeBreak,
	}))
	assert.Contains(t, model.View(), "BREAK")
	assert.Equal(t, "15:00", model.clock(true))
}

func TestStorageErrorsAreShown(t *testing.T) {
	model, _, _ := newTestModel(t)
	model, _ = update(t, model, eventMsg(timekeeper.Event{
		Type:    timekeeper.EventStorageError,
		Message: "disk full",
	}))
	assert.Contains(t, model.View(), "storage unavailable: disk full")
}

func TestHelpToggle(t *testing.T) {
	model, _, _ := newTestModel(t)
	assert.False(t, model.help.ShowAll)
	model, _ = update(t, model, runes("?"))
	assert.True(t, model.help.ShowAll)
	assert.Contains(t, model.View(), "suspend")
}

func TestRenderBigClock(t *testing.T) {
	rendered := renderBigClock("12:05", ColorWork)
	assert.Len(t, strings.Split(rendered, "\n"), 5)
	assert.Contains(t, rendered, "█")
}
