// Package service holds the use-case layer. It owns the business rules
// (trimming, validation) and delegates persistence to the storage port, so
// the same logic runs unchanged against either backend.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/maru/gestor/internal/model"
	"github.com/maru/gestor/internal/store"
)

// TaskService orchestrates task operations against a storage port.
type TaskService struct {
	store store.Store
	log   *zap.Logger
}

// NewTaskService returns a service bound to the given store. The logger may
// be nil, e.g. in tests.
func NewTaskService(st store.Store, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{store: st, log: log}
}

// Create trims the title and description and persists a new task.
func (s *TaskService) Create(ctx context.Context, title, description string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if err := store.ValidateTitle(title); err != nil {
		s.log.Warn("create task rejected", zap.Error(err))
		return nil, fmt.Errorf("create task: %w", err)
	}

	t, err := s.store.Create(ctx, title, description)
	if err != nil {
		s.log.Warn("create task failed", zap.Error(err))
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.Info("task created", zap.Int64("id", t.ID), zap.String("title", t.Title))
	return t, nil
}

// Get returns one task by id.
func (s *TaskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// List returns all tasks in creation order.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		s.log.Warn("list tasks failed", zap.Error(err))
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	s.log.Info("tasks listed", zap.Int("count", len(tasks)))
	return tasks, nil
}

// Update applies a partial update. Patch fields are trimmed before they
// reach the store.
func (s *TaskService) Update(ctx context.Context, id int64, patch store.TaskPatch) (*model.Task, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}

	t, err := s.store.Update(ctx, id, patch)
	if err != nil {
		s.log.Warn("update task failed", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	s.log.Info("task updated", zap.Int64("id", t.ID), zap.String("title", t.Title))
	return t, nil
}

// Delete removes a task permanently. Its id is never reused.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn("delete task failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.log.Info("task deleted", zap.Int64("id", id))
	return nil
}

// Complete marks a task as done.
func (s *TaskService) Complete(ctx context.Context, id int64) (*model.Task, error) {
	t, err := s.store.MarkCompleted(ctx, id)
	if err != nil {
		s.log.Warn("complete task failed", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("complete task %d: %w", id, err)
	}

	s.log.Info("task completed", zap.Int64("id", t.ID), zap.String("title", t.Title))
	return t, nil
}
