package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window         fyne.Window
	settings       Settings
	onSave         func(Settings)
	onCancel       func()
	workMinutes    *widget.Entry
	breakMinutes   *widget.Entry
	keepAwake      *widget.Check
	resumeOnLaunch *widget.Check
	logLevel       *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	workMinutes := widget.NewEntry()
	breakMinutes := widget.NewEntry()
	keepAwake := widget.NewCheck("Keep the screen awake while running", nil)
	resumeOnLaunch := widget.NewCheck("Resume the countdown on launch", nil)
	logLevel := widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work for"), workMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break for"), breakMinutes, widget.NewLabel("min")),
		keepAwake,
		resumeOnLaunch,
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		widget.NewLabel("Changes apply the next time the timer starts up."),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))

	prefs := &Window{
		window:         window,
		onSave:         onSave,
		workMinutes:    workMinutes,
		breakMinutes:   breakMinutes,
		keepAwake:      keepAwake,
		resumeOnLaunch: resumeOnLaunch,
		logLevel:       logLevel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run when editing is abandoned.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMinutes.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	prefs.breakMinutes.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	prefs.keepAwake.SetChecked(settings.KeepAwake)
	prefs.resumeOnLaunch.SetChecked(settings.ResumeOnLaunch)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

// Settings returns the last saved or loaded values.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMinutes.Text); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.breakMinutes.Text); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	settings.KeepAwake = prefs.keepAwake.Checked
	settings.ResumeOnLaunch = prefs.resumeOnLaunch.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
