package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pomodoro/internal/logger"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/tui"
	"pomodoro/internal/ui/animation"
)

const logFileName = "pomodoro.log"

func newTUICmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the countdown in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(options)
			if err != nil {
				return err
			}
			return runTerminal(cmd.Context(), env)
		},
	}
}

func runTerminal(ctx context.Context, env *environment) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	// The terminal belongs to the program, so logs go to a file.
	if err := os.MkdirAll(env.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	log, err := logger.NewFile(filepath.Join(env.dataDir, logFileName), env.settings.LogLevel)
	if err != nil {
		return err
	}
	defer log.Close()
	env.report(log.SugaredLogger)

	store, err := env.openStore(nil)
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
	platform.WatchResume(ctx, notifier.Notify)

	keeper := env.newKeeper(store, machine, log.SugaredLogger)
	defer keeper.Close()
	keeper.Attach(notifier)
	events := keeper.Subscribe(16)
	keeper.Start(ctx)

	return tui.Run(ctx, tui.Options{
		Machine:    machine,
		Events:     events,
		Foreground: notifier.Notify,
		Ready:      keeper.Refresh,
	})
}
