package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	logLevel    string
	storage     string
	storagePath string
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "A work/break countdown timer",
		Long: `pomodoro alternates a work countdown and a break countdown.
The running segment is persisted, so the countdown survives suspension,
backgrounding and restarts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&options.configPath, "config", "", "settings file (default <user config dir>/Pomodoro/settings.yaml)")
	flags.StringVar(&options.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&options.storage, "storage", "", "storage backend: sqlite, file, memory or preferences")
	flags.StringVar(&options.storagePath, "storage-path", "", "database file or state directory of the storage backend")

	cmd.AddCommand(newRunCmd(options))
	cmd.AddCommand(newTUICmd(options))
	cmd.AddCommand(newStatusCmd(options))
	cmd.AddCommand(newResetCmd(options))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
