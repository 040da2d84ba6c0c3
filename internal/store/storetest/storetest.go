// Package storetest holds a conformance suite run against every storage
// backend, so the in-memory and SQLite stores stay observably identical.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maru/gestor/internal/store"
)

// Factory builds a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Run exercises the full storage port contract against the given backend.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "buy groceries", "milk, eggs")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.Completed)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "buy groceries", got.Title)
		assert.Equal(t, "milk, eggs", got.Description)
		assert.False(t, got.Completed)
	})

	t.Run("create assigns unique ids", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		seen := make(map[int64]bool)
		for i := 0; i < 10; i++ {
			created, err := s.Create(ctx, "task", "")
			require.NoError(t, err)
			assert.False(t, seen[created.ID], "id %d assigned twice", created.ID)
			seen[created.ID] = true
		}
	})

	t.Run("create rejects empty title", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		_, err := s.Create(ctx, "", "description without a title")
		var verr *store.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("get unknown id", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		_, err := s.Get(ctx, 42)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		t1, err := s.Create(ctx, "first", "")
		require.NoError(t, err)
		t2, err := s.Create(ctx, "second", "")
		require.NoError(t, err)
		t3, err := s.Create(ctx, "third", "")
		require.NoError(t, err)

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []int64{t1.ID, t2.ID, t3.ID},
			[]int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})

		require.NoError(t, s.Delete(ctx, t2.ID))

		tasks, err = s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, t1.ID, tasks[0].ID)
		assert.Equal(t, t3.ID, tasks[1].ID)
	})

	t.Run("list on empty store", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("partial update", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "old title", "old description")
		require.NoError(t, err)

		title := "new title"
		updated, err := s.Update(ctx, created.ID, store.TaskPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "old description", updated.Description)

		desc := "new description"
		updated, err = s.Update(ctx, created.ID, store.TaskPatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "new description", updated.Description)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
		assert.Equal(t, "new description", got.Description)
	})

	t.Run("update rejects empty title", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "keep me", "")
		require.NoError(t, err)

		empty := ""
		_, err = s.Update(ctx, created.ID, store.TaskPatch{Title: &empty})
		var verr *store.ValidationError
		require.ErrorAs(t, err, &verr)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "keep me", got.Title)
	})

	t.Run("update unknown id", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		title := "anything"
		_, err := s.Update(ctx, 99, store.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete then get", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "doomed", "")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))

		_, err = s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("double delete fails", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "doomed", "")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))
		assert.ErrorIs(t, s.Delete(ctx, created.ID), store.ErrNotFound)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		first, err := s.Create(ctx, "first", "")
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, first.ID))

		second, err := s.Create(ctx, "second", "")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("mark completed", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		created, err := s.Create(ctx, "finish report", "quarterly numbers")
		require.NoError(t, err)

		done, err := s.MarkCompleted(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, done.Completed)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Description, got.Description)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)

		// Completing twice is a no-op, not an error.
		again, err := s.MarkCompleted(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, again.Completed)
	})

	t.Run("mark completed unknown id", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		_, err := s.MarkCompleted(ctx, 7)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
