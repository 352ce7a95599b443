package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/storage"
)

func newStatusCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(options)
			if err != nil {
				return err
			}
			store, err := env.openStore(nil)
			if err != nil {
				return err
			}
			defer storage.Close(store)

			config := env.settings.TimerConfig()
			durations := countdown.NewDurations(config.WorkDuration, config.BreakDuration)
			return printStatus(cmd.Context(), cmd.OutOrStdout(), store, durations, time.Now())
		},
	}
}

func printStatus(ctx context.Context, out io.Writer, store storage.Store, durations countdown.Durations, now time.Time) error {
	data, ok, err := store.Get(ctx, countdown.StorageKey)
	if err != nil {
		return fmt.Errorf("read countdown record: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "No countdown running")
		return nil
	}

	record, err := countdown.DecodeRecord(data)
	if errors.Is(err, countdown.ErrMalformedRecord) {
		fmt.Fprintf(out, "Stored countdown is unreadable: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	state := countdown.Rehydrate(record, now, durations)
	fmt.Fprintf(out, "%s %s remaining (started %s)\n",
		state.Mode, countdown.Clock(state.Remaining), record.Start().Local().Format(time.TimeOnly))
	return nil
}

func newResetCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the persisted countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(options)
			if err != nil {
				return err
			}
			store, err := env.openStore(nil)
			if err != nil {
				return err
			}
			defer storage.Close(store)

			if err := store.Delete(cmd.Context(), countdown.StorageKey); err != nil {
				return fmt.Errorf("delete countdown record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Countdown reset")
			return nil
		},
	}
}
