package commands

import (
	"fmt"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logger"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

// environment is the resolved configuration of one invocation.
type environment struct {
	// settings carries the flag overrides; stored is the file as loaded.
	settings     preferences.Settings
	stored       preferences.Settings
	settingsPath string
	dataDir      string
	// settingsErr is a settings file problem that fell back to defaults.
	settingsErr error
}

func loadEnvironment(options *rootOptions) (*environment, error) {
	path := options.configPath
	if path == "" {
		defaultPath, err := storage.SettingsPath(appName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	stored, settingsErr := storage.LoadSettings(path)
	settings := stored
	if options.logLevel != "" {
		settings.LogLevel = options.logLevel
	}
	if options.storage != "" {
		settings.StorageBackend = options.storage
	}
	if options.storagePath != "" {
		settings.StoragePath = options.storagePath
	}

	dataDir, err := platform.DataDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	return &environment{
		settings:     settings,
		stored:       stored,
		settingsPath: path,
		dataDir:      dataDir,
		settingsErr:  settingsErr,
	}, nil
}

// report logs problems found while loading the environment.
func (env *environment) report(log *zap.SugaredLogger) {
	if env.settingsErr != nil {
		log.Warnw("settings file ignored", "path", env.settingsPath, "err", env.settingsErr)
	}
}

func (env *environment) consoleLogger() *logger.Logger {
	log := logger.Get(env.settings.LogLevel)
	env.report(log.SugaredLogger)
	return log
}

func (env *environment) openStore(prefs fyne.Preferences) (storage.Store, error) {
	store, err := storage.Open(env.settings.StorageBackend, env.settings.StoragePath, env.dataDir, prefs)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return store, nil
}

func (env *environment) newKeeper(store storage.Store, surface timekeeper.Surface, log *zap.SugaredLogger) *timekeeper.TimeKeeper {
	awake := platform.NoopKeepAwake()
	if env.settings.KeepAwake {
		awake = platform.NewKeepAwake(appName)
	}
	return timekeeper.New(env.settings.TimerConfig(), timekeeper.Options{
		Store:     store,
		Surface:   surface,
		KeepAwake: awake,
		Logger:    logger.Named(log, "timekeeper"),
	})
}
