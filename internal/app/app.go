package app

import (
	"io"
	"log/slog"
	"sync"

	"github.com/vk/bitconf/internal/backend"
	"github.com/vk/bitconf/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	runtime backend.Runtime

	mu      sync.Mutex
	lastErr error
	loaded  bool
}

// NewApp is the constructor for the main application. Descriptor records go
// to outW through a backend.Recorder unless a runtime is supplied; logs go to
// logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, runtime backend.Runtime) *App {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	if runtime == nil {
		runtime = backend.NewRecorder(outW, backend.Format(cfg.Output))
		logger.Debug("Using recording runtime.", "format", cfg.Output)
	}

	return &App{
		logger:  logger,
		config:  cfg,
		loader:  loader,
		runtime: runtime,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Status reports whether a pass has completed and the error of the latest
// one, if it failed.
func (a *App) Status() (loaded bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded, a.lastErr
}

func (a *App) setStatus(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loaded = true
	a.lastErr = err
}
