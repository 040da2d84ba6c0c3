// Package app wires the process together: configuration, log file,
// single-instance lock and the chosen storage backend, injected into the
// use-case layer. The backend is picked exactly once, here; nothing past
// this point branches on backend type.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/maru/gestor/internal/config"
	"github.com/maru/gestor/internal/logging"
	"github.com/maru/gestor/internal/service"
	"github.com/maru/gestor/internal/store"
	"github.com/maru/gestor/internal/store/memory"
	"github.com/maru/gestor/internal/store/sqlite"
)

// App holds the application state and dependencies.
type App struct {
	Tasks *service.TaskService
	Log   *zap.Logger

	store    store.Store
	lockFile *flock.Flock
}

// New creates a new application instance from the given configuration.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	log, err := logging.Open(cfg.Logging.Path)
	if err != nil {
		return nil, err
	}

	a := &App{Log: log}

	st, err := a.openStore(cfg)
	if err != nil {
		a.releaseLock()
		log.Sync()
		return nil, err
	}
	a.store = st
	a.Tasks = service.NewTaskService(st, log)

	log.Info("backend selected", zap.String("backend", cfg.Storage.Backend))
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		// Two processes must not share the database file.
		if err := a.acquireLock(filepath.Dir(cfg.Storage.Path)); err != nil {
			return nil, err
		}
		return sqlite.Open(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// acquireLock takes an exclusive file lock to prevent multiple instances
// from writing the same database.
func (a *App) acquireLock(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	a.lockFile = flock.New(filepath.Join(dir, "gestor.lock"))

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of gestor is already running")
	}
	return nil
}

func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources.
func (a *App) Close() error {
	var errs []error

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	a.releaseLock()

	if a.Log != nil {
		a.Log.Sync()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
