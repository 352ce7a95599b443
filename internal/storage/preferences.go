package storage

import (
	"context"

	"fyne.io/fyne/v2"
)

// Preferences stores values in the application's fyne preferences, which is
// the platform key-value store on mobile targets.
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps app preferences as a Store.
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

func (store *Preferences) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	value := store.prefs.String(key)
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (store *Preferences) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.prefs.SetString(key, string(value))
	return nil
}

func (store *Preferences) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.prefs.RemoveValue(key)
	return nil
}
