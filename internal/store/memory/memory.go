// Package memory implements the storage port with a process-local map.
// Nothing is persisted: state is gone when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/maru/gestor/internal/model"
	"github.com/maru/gestor/internal/store"
)

// Store keeps tasks in a map keyed by id, plus an id slice that preserves
// creation order for List. The counter only ever increments, so deleted ids
// are never handed out again.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]*model.Task
	order  []int64
	nextID int64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		tasks: make(map[int64]*model.Task),
	}
}

func (s *Store) Create(ctx context.Context, title, description string) (*model.Task, error) {
	if err := store.ValidateTitle(title); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &model.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)

	out := *t
	return &out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, *s.tasks[id])
	}
	return tasks, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch store.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	title := t.Title
	if patch.Title != nil {
		title = *patch.Title
	}
	if err := store.ValidateTitle(title); err != nil {
		return nil, err
	}

	t.Title = title
	if patch.Description != nil {
		t.Description = *patch.Description
	}

	out := *t
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tasks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) MarkCompleted(ctx context.Context, id int64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.Completed = true

	out := *t
	return &out, nil
}

func (s *Store) Close() error {
	return nil
}
