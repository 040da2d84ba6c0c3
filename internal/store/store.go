// Package store defines the storage port for tasks and the error kinds
// shared by its backends. Both the in-memory and the SQLite backend
// implement Store; the use-case layer only ever sees this interface.
package store

import (
	"context"

	"github.com/maru/gestor/internal/model"
)

// TaskPatch describes a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
}

// Store is the storage port. List returns tasks in creation order.
type Store interface {
	// Create persists a new task and assigns its id. The title must be
	// non-empty.
	Create(ctx context.Context, title, description string) (*model.Task, error)

	// Get returns the task with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Task, error)

	// List returns all tasks in creation order. An empty store yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]model.Task, error)

	// Update applies the patch and returns the updated task. The resulting
	// title must be non-empty.
	Update(ctx context.Context, id int64, patch TaskPatch) (*model.Task, error)

	// Delete removes the task. Deleting an absent id, including a second
	// delete of the same id, returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// MarkCompleted sets the completed flag. Completion is monotonic: there
	// is no operation to reopen a task.
	MarkCompleted(ctx context.Context, id int64) (*model.Task, error)

	Close() error
}
