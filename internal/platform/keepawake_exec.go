//go:build linux || darwin

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// commandKeepAwake holds an inhibitor process for as long as the request is held.
type commandKeepAwake struct {
	mu   sync.Mutex
	path string
	args []string
	cmd  *exec.Cmd
}

func newCommandKeepAwake(name string, args ...string) KeepAwake {
	path, err := exec.LookPath(name)
	if err != nil {
		return noopKeepAwake{}
	}
	return &commandKeepAwake{path: path, args: args}
}

func (awake *commandKeepAwake) Acquire() error {
	awake.mu.Lock()
	defer awake.mu.Unlock()
	if awake.cmd != nil {
		return nil
	}
	cmd := exec.Command(awake.path, awake.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start inhibitor: %w", err)
	}
	awake.cmd = cmd
	return nil
}

func (awake *commandKeepAwake) Release() error {
	awake.mu.Lock()
	cmd := awake.cmd
	awake.cmd = nil
	awake.mu.Unlock()
	if cmd == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop inhibitor: %w", err)
	}
	// the process was killed on purpose
	var exitErr *exec.ExitError
	if err := cmd.Wait(); err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("wait inhibitor: %w", err)
	}
	return nil
}
