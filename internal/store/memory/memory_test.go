package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maru/gestor/internal/store"
	"github.com/maru/gestor/internal/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}

func TestReturnedTasksAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.Create(ctx, "original", "")
	require.NoError(t, err)

	// Mutating the returned task must not leak into the store.
	created.Title = "mutated"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}
