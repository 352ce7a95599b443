package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/animation"
)

const animationInterval = 400 * time.Millisecond

// Options wires the model to the countdown.
type Options struct {
	Machine *animation.Machine
	// Events is the TimeKeeper subscription; nil disables the progress bar.
	Events <-chan timekeeper.Event
	// Foreground is called on terminal focus and after a suspend resumes.
	Foreground func()
	// Ready is called by Run once the machine accepts writes.
	Ready func()
}

// Model renders the countdown machine in a terminal.
type Model struct {
	machine    *animation.Machine
	changes    <-chan struct{}
	events     <-chan timekeeper.Event
	foreground func()

	frame    animation.Frame
	last     timekeeper.Event
	progress progress.Model
	help     help.Model
	keys     keyMap

	width     int
	height    int
	animation int
	quitting  bool
}

// machineChangedMsg is sent whenever a binding changes.
type machineChangedMsg struct{}

// eventMsg carries a TimeKeeper event.
type eventMsg timekeeper.Event

// animationTickMsg advances the header animation.
type animationTickMsg struct{}

// NewModel creates the model. changes must come from options.Machine.Watch.
func NewModel(options Options, changes <-chan struct{}) Model {
	bar := progress.New(progress.WithSolidFill(ColorWork), progress.WithoutPercentage())
	bar.Width = 40
	foreground := options.Foreground
	if foreground == nil {
		foreground = func() {}
	}
	return Model{
		machine:    options.Machine,
		changes:    changes,
		events:     options.Events,
		foreground: foreground,
		frame:      options.Machine.Snapshot(),
		progress:   bar,
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
}

// Init starts listening for machine changes and events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		waitForEvent(m.events),
		animationTick(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case machineChangedMsg:
		m.frame = m.machine.Snapshot()
		return m, waitForChange(m.changes)

	case eventMsg:
		m.last = timekeeper.Event(msg)
		return m, waitForEvent(m.events)

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if m.quitting {
			return m, nil
		}
		return m, animationTick()

	case tea.FocusMsg, tea.ResumeMsg:
		return m, m.notifyForeground()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Play):
			return m, fire(m.machine, timekeeper.TriggerPlay)
		case key.Matches(msg, m.keys.Stop):
			return m, fire(m.machine, timekeeper.TriggerStop)
		case key.Matches(msg, m.keys.Suspend):
			return m, tea.Suspend
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the countdown
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 60
	}

	breakVisual := m.frame.Input(timekeeper.InputBreak)
	accent := ColorWork
	title := "WORK"
	if breakVisual {
		accent = ColorBreak
		title = "BREAK"
	}
	if m.last.Phase == countdown.PhaseSwitching {
		accent = ColorSwitch
	}

	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	var components []string

	marks := []string{"◐", "◓", "◑", "◒"}
	mark := marks[m.animation]
	if m.last.Phase != countdown.PhaseRunning && m.last.Phase != countdown.PhaseSwitching {
		mark = "○"
	}
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(accent)).
		Bold(true).
		Render(fmt.Sprintf("%s  %s  %s", mark, title, mark))
	components = append(components, center.Render(header))

	active := m.clock(breakVisual)
	components = append(components, center.Render(renderBigClock(active, accent)))

	readouts := fmt.Sprintf("work %s   break %s",
		m.clockText(timekeeper.OutputWorkMinutes, timekeeper.OutputWorkSeconds),
		m.clockText(timekeeper.OutputBreakMinutes, timekeeper.OutputBreakSeconds),
	)
	components = append(components, center.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(readouts),
	))

	if m.events != nil {
		components = append(components, center.Render(m.progress.ViewAs(m.last.Progress)))
	}

	components = append(components, center.Render(m.statusLine()))
	components = append(components, center.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(m.help.View(m.keys)),
	))

	content := strings.Join(components, "\n\n")
	if m.height == 0 {
		return content
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// clock returns the readout of the committed mode, or of the visual before
// the first event arrives.
func (m Model) clock(breakVisual bool) string {
	mode := m.last.Mode
	if m.last.Type == "" && breakVisual {
		mode = countdown.ModeBreak
	}
	if mode == countdown.ModeBreak {
		return m.clockText(timekeeper.OutputBreakMinutes, timekeeper.OutputBreakSeconds)
	}
	return m.clockText(timekeeper.OutputWorkMinutes, timekeeper.OutputWorkSeconds)
}

func (m Model) clockText(minutesName, secondsName string) string {
	minutes := m.frame.Output(minutesName)
	seconds := m.frame.Output(secondsName)
	if minutes == "" {
		minutes = "--"
	}
	if seconds == "" {
		seconds = "--"
	}
	return minutes + ":" + seconds
}

func (m Model) statusLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true)
	switch {
	case m.last.Type == timekeeper.EventStorageError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).
			Render("storage unavailable: " + m.last.Message)
	case !m.frame.Ready:
		return style.Render("waiting for countdown...")
	default:
		return style.Render(m.last.Phase.String())
	}
}

func (m Model) notifyForeground() tea.Cmd {
	foreground := m.foreground
	return func() tea.Msg {
		foreground()
		return nil
	}
}

// fire runs trigger handlers off the event loop.
func fire(machine *animation.Machine, trigger string) tea.Cmd {
	return func() tea.Msg {
		machine.Fire(trigger)
		return nil
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return machineChangedMsg{}
	}
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(event)
	}
}

func animationTick() tea.Cmd {
	return tea.Tick(animationInterval, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}
