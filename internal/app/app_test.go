package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maru/gestor/internal/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Storage: config.StorageConfig{
			Backend: backend,
			Path:    filepath.Join(dir, "gestor.db"),
		},
		Logging: config.LoggingConfig{
			Path: filepath.Join(dir, "gestor.log"),
		},
	}
}

func TestNewWithMemoryBackend(t *testing.T) {
	a, err := New(testConfig(t, config.BackendMemory))
	require.NoError(t, err)
	defer a.Close()

	created, err := a.Tasks.Create(context.Background(), "wired up", "")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestNewWithSQLiteBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	a, err := New(cfg)
	require.NoError(t, err)

	_, err = a.Tasks.Create(context.Background(), "persisted", "")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// The lock is released on Close, so a second instance can start.
	b, err := New(cfg)
	require.NoError(t, err)
	defer b.Close()

	tasks, err := b.Tasks.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestSecondInstanceIsRefused(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
