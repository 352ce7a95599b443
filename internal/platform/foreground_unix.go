//go:build unix

package platform

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResume calls notify every time the process is continued after a stop
// (SIGCONT), until ctx is done.
func WatchResume(ctx context.Context, notify func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGCONT)
	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				notify()
			}
		}
	}()
}
