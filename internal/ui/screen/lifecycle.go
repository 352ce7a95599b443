package screen

import (
	"fyne.io/fyne/v2"

	"pomodoro/internal/platform"
)

// ForwardForeground relays fyne's entered-foreground lifecycle hook to notifier.
func ForwardForeground(app fyne.App, notifier *platform.ForegroundNotifier) {
	app.Lifecycle().SetOnEnteredForeground(notifier.Notify)
}
