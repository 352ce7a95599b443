package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// Store durably keeps small values under fixed keys.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Backend names accepted by Open.
const (
	BackendMemory      = "memory"
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendPreferences = "preferences"
)

// ErrUnknownBackend indicates an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	defaultSQLiteName = "pomodoro.db"
	defaultStateDir   = "state"
)

// Open returns the store selected by backend; an empty backend selects
// sqlite. dataDir is used when path is empty. prefs is only consulted by the
// preferences backend.
func Open(backend, path, dataDir string, prefs fyne.Preferences) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		if path == "" {
			path = filepath.Join(dataDir, defaultStateDir)
		}
		return NewFile(path), nil
	case "", BackendSQLite:
		if path == "" {
			path = filepath.Join(dataDir, defaultSQLiteName)
		}
		return OpenSQLite(path)
	case BackendPreferences:
		if prefs == nil {
			return nil, fmt.Errorf("open preferences store: %w: no application preferences", ErrUnknownBackend)
		}
		return NewPreferences(prefs), nil
	default:
		return nil, fmt.Errorf("open store %q: %w", backend, ErrUnknownBackend)
	}
}

// Close releases the store if it holds resources.
func Close(store Store) error {
	if closer, ok := store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
