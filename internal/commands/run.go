package commands

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logger"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/screen"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

func newRunCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the desktop countdown window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(options)
			if err != nil {
				return err
			}
			return runDesktop(cmd.Context(), env)
		},
	}
}

func runDesktop(ctx context.Context, env *environment) error {
	log := env.consoleLogger()
	defer log.Sync()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoApp))

	store, err := env.openStore(fyneApp.Preferences())
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(store); err != nil {
			log.Warnw("close storage", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	machine := animation.NewMachine("countdown")
	notifier := platform.NewForegroundNotifier()
	screen.ForwardForeground(fyneApp, notifier)
	platform.WatchResume(ctx, notifier.Notify)

	keeper := env.newKeeper(store, machine, log.SugaredLogger)
	defer keeper.Close()
	keeper.Attach(notifier)
	events := keeper.Subscribe(16)

	window := screen.New(fyneApp, machine, animation.DefaultConfig(), screen.DefaultVisuals())
	defer window.Close()

	settingsLog := logger.Named(log.SugaredLogger, "settings")
	prefsWindow := preferences.New(fyneApp, env.stored, func(updated preferences.Settings) {
		if err := storage.SaveSettings(env.settingsPath, updated); err != nil {
			settingsLog.Warnw("save settings", "path", env.settingsPath, "err", err)
			return
		}
		settingsLog.Infow("settings saved", "path", env.settingsPath)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        window.Show,
			OnPlay:        func() { machine.Fire(timekeeper.TriggerPlay) },
			OnStop:        func() { machine.Fire(timekeeper.TriggerStop) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.LogoApp))
		window.SetOnClosed(window.Hide)
	} else {
		log.Infow("system tray unsupported on this platform")
		window.SetOnClosed(fyneApp.Quit)
	}

	go func() {
		for event := range events {
			if trayManager == nil {
				continue
			}
			fyne.Do(func() {
				trayManager.Apply(event)
			})
		}
	}()

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	keeper.Start(ctx)
	window.Start(ctx)
	keeper.Refresh()

	fyneApp.Run()
	return nil
}
