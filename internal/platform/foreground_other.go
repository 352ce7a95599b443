//go:build !unix

package platform

import "context"

// WatchResume is a no-op: only unix processes are job-control stopped.
func WatchResume(ctx context.Context, notify func()) {}
