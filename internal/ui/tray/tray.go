package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPlay        func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	showItem    *fyne.MenuItem
	playItem    *fyne.MenuItem
	stopItem    *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. A nil app keeps the
// menu in memory only.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show timer", func() { invoke(manager.callbacks.OnShow) })
	manager.playItem = fyne.NewMenuItem("Start", func() { invoke(manager.callbacks.OnPlay) })
	manager.stopItem = fyne.NewMenuItem("Stop", func() { invoke(manager.callbacks.OnStop) })
	manager.stopItem.Disabled = true
	manager.prefsItem = fyne.NewMenuItem("Preferences", func() { invoke(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) })

	manager.refreshStatus()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.playItem,
		manager.stopItem,
		manager.prefsItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning toggles which of start and stop is available.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.playItem.Disabled = running
	manager.stopItem.Disabled = !running
	manager.refreshMenu()
}

// Apply updates the tray from a countdown event.
func (manager *Manager) Apply(event timekeeper.Event) {
	if event.Type == timekeeper.EventStorageError {
		return
	}
	running := event.Phase == countdown.PhaseRunning || event.Phase == countdown.PhaseSwitching
	if running != manager.running {
		manager.SetRunning(running)
	}
	manager.SetStatus(StatusText(event.Phase, event.Mode, event.Remaining))
}

// StatusText describes the countdown for the status line.
func StatusText(phase countdown.Phase, mode countdown.Mode, remaining time.Duration) string {
	switch phase {
	case countdown.PhaseRunning:
		return fmt.Sprintf("%s %s", mode, countdown.Clock(int(remaining/time.Second)))
	case countdown.PhaseSwitching:
		return fmt.Sprintf("%s finished", mode)
	default:
		return phase.String()
	}
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
