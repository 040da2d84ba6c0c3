package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maru/gestor/internal/store"
	"github.com/maru/gestor/internal/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		return s
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)

	created, err := s.Create(ctx, "survives restart", "written before close")
	require.NoError(t, err)
	_, err = s.MarkCompleted(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives restart", got.Title)
	assert.Equal(t, "written before close", got.Description)
	assert.True(t, got.Completed)
}

func TestOpenBadPath(t *testing.T) {
	// Occupy the would-be data directory with a regular file so MkdirAll
	// cannot create it.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "occupied"), []byte("x"), 0644))

	s, err := Open(filepath.Join(dir, "occupied", "test.db"))
	require.Error(t, err)
	var uerr *store.UnavailableError
	assert.ErrorAs(t, err, &uerr)
	assert.Nil(t, s)
}
