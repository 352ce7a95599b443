package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
// Only one process may own the persisted countdown at a time.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := InstanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s busy", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// InstanceAddress returns the lock address used for appName.
func InstanceAddress(appName string) string {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(strings.ToLower(strings.TrimSpace(appName))))
	rangeSize := uint32(maxPort - minPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minPort+int(hash.Sum32()%rangeSize))
}
