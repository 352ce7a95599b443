package screen

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/animation"
)

var (
	workColor   = color.NRGBA{R: 226, G: 72, B: 61, A: 255}
	breakColor  = color.NRGBA{R: 75, G: 179, B: 122, A: 255}
	dimmedColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// Window renders a Machine: the sprite, both countdown readouts and the
// play and stop triggers.
type Window struct {
	window     fyne.Window
	machine    *animation.Machine
	engine     *animation.Engine
	image      *canvas.Image
	workLabel  *canvas.Text
	breakLabel *canvas.Text
	caption    *canvas.Text
	playButton *widget.Button
	stopButton *widget.Button

	mu        sync.Mutex
	cancelCtx context.CancelFunc
}

// New creates the countdown window bound to machine.
func New(app fyne.App, machine *animation.Machine, config animation.Config, visuals animation.VisualSpec) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	image := canvas.NewImageFromResource(visuals.Work.Open)
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(160, 160))

	workLabel := readout(workColor)
	breakLabel := readout(dimmedColor)

	caption := canvas.NewText("work", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	caption.Alignment = fyne.TextAlignCenter
	caption.TextSize = 14

	playButton := widget.NewButton("Start", func() {
		machine.Fire(timekeeper.TriggerPlay)
	})
	stopButton := widget.NewButton("Stop", func() {
		machine.Fire(timekeeper.TriggerStop)
	})

	readouts := container.NewGridWithColumns(2,
		container.NewVBox(centered("Work"), workLabel),
		container.NewVBox(centered("Break"), breakLabel),
	)
	buttons := container.NewHBox(layout.NewSpacer(), playButton, stopButton, layout.NewSpacer())
	window.SetContent(container.NewVBox(image, caption, readouts, buttons))
	window.Resize(fyne.NewSize(320, 380))

	screen := &Window{
		window:     window,
		machine:    machine,
		image:      image,
		workLabel:  workLabel,
		breakLabel: breakLabel,
		caption:    caption,
		playButton: playButton,
		stopButton: stopButton,
	}
	screen.engine = animation.New(config, visuals, screen.SetSprite)
	screen.engine.SetOnSceneChange(func(scene animation.Scene) {
		fyne.Do(func() {
			screen.titleUnsafe(scene)
		})
	})
	return screen
}

// Start shows the window, marks the machine ready and renders binding
// changes until ctx is done or Close is called.
func (screen *Window) Start(ctx context.Context) {
	screen.mu.Lock()
	if screen.cancelCtx != nil {
		screen.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	screen.cancelCtx = cancel
	screen.mu.Unlock()

	changes, stopWatching := screen.machine.Watch()
	screen.window.Show()
	screen.machine.SetReady(true)
	screen.render(runCtx, screen.machine.Snapshot())

	go func() {
		defer stopWatching()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-changes:
				screen.render(runCtx, screen.machine.Snapshot())
			}
		}
	}()
}

// Show brings the window to the front.
func (screen *Window) Show() {
	screen.window.Show()
	screen.window.RequestFocus()
}

// SetOnClosed sets the handler for the window close button.
func (screen *Window) SetOnClosed(handler func()) {
	screen.window.SetCloseIntercept(handler)
}

// Hide hides the window without tearing anything down.
func (screen *Window) Hide() {
	screen.window.Hide()
}

// Close stops rendering and marks the machine not ready.
func (screen *Window) Close() {
	screen.mu.Lock()
	cancel := screen.cancelCtx
	screen.cancelCtx = nil
	screen.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	screen.engine.Stop()
	screen.machine.SetReady(false)
}

// SetSprite updates the sprite image.
func (screen *Window) SetSprite(resource fyne.Resource) {
	fyne.Do(func() {
		screen.image.Resource = resource
		screen.image.Refresh()
	})
}

func (screen *Window) render(ctx context.Context, frame animation.Frame) {
	scene := animation.SceneWork
	if frame.Input(timekeeper.InputBreak) {
		scene = animation.SceneBreak
	}
	screen.engine.Show(ctx, scene)

	fyne.Do(func() {
		screen.applyUnsafe(frame, scene)
	})
}

func (screen *Window) applyUnsafe(frame animation.Frame, scene animation.Scene) {
	screen.workLabel.Text = clockText(frame, timekeeper.OutputWorkMinutes, timekeeper.OutputWorkSeconds)
	screen.breakLabel.Text = clockText(frame, timekeeper.OutputBreakMinutes, timekeeper.OutputBreakSeconds)
	if scene == animation.SceneBreak {
		screen.workLabel.Color = dimmedColor
		screen.breakLabel.Color = breakColor
	} else {
		screen.workLabel.Color = workColor
		screen.breakLabel.Color = dimmedColor
	}
	screen.caption.Text = scene.String()
	screen.workLabel.Refresh()
	screen.breakLabel.Refresh()
	screen.caption.Refresh()
}

func (screen *Window) titleUnsafe(scene animation.Scene) {
	screen.window.SetTitle("Pomodoro - " + scene.String())
}

func clockText(frame animation.Frame, minutesName, secondsName string) string {
	minutes := frame.Output(minutesName)
	seconds := frame.Output(secondsName)
	if minutes == "" {
		minutes = "--"
	}
	if seconds == "" {
		seconds = "--"
	}
	return minutes + ":" + seconds
}

func readout(fill color.Color) *canvas.Text {
	text := canvas.NewText("--:--", fill)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.TextSize = 28
	return text
}

func centered(label string) *widget.Label {
	return widget.NewLabelWithStyle(label, fyne.TextAlignCenter, fyne.TextStyle{})
}
