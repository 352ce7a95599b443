//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
)

const (
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
	esContinuous      = 0x80000000
)

var procSetThreadExecutionState = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")

// executionStateKeepAwake pins a goroutine to one OS thread, because the
// execution state belongs to the thread that set it.
type executionStateKeepAwake struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newKeepAwake(string) KeepAwake {
	if err := procSetThreadExecutionState.Find(); err != nil {
		return noopKeepAwake{}
	}
	return &executionStateKeepAwake{}
}

func (awake *executionStateKeepAwake) Acquire() error {
	awake.mu.Lock()
	defer awake.mu.Unlock()
	if awake.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		if ret, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired)); ret == 0 {
			result <- fmt.Errorf("set thread execution state: %w", err)
			return
		}
		result <- nil
		<-stop
		procSetThreadExecutionState.Call(uintptr(esContinuous))
	}()

	if err := <-result; err != nil {
		<-done
		return err
	}
	awake.stop = stop
	awake.done = done
	return nil
}

func (awake *executionStateKeepAwake) Release() error {
	awake.mu.Lock()
	stop, done := awake.stop, awake.done
	awake.stop, awake.done = nil, nil
	awake.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}
