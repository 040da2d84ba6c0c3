package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maru/gestor/internal/model"
	"github.com/maru/gestor/internal/service"
	"github.com/maru/gestor/internal/store"
	"github.com/maru/gestor/internal/store/memory"
)

// MockStore is a testify double for the storage port.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, title, description string) (*model.Task, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockStore) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id int64, patch store.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) MarkCompleted(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestCreateTrimsWhitespace(t *testing.T) {
	ms := new(MockStore)
	ms.On("Create", mock.Anything, "write tests", "for the service layer").
		Return(&model.Task{ID: 1, Title: "write tests"}, nil)

	svc := service.NewTaskService(ms, nil)
	_, err := svc.Create(context.Background(), "  write tests  ", "\tfor the service layer\n")
	require.NoError(t, err)

	ms.AssertExpectations(t)
}

func TestCreateWhitespaceOnlyTitleFails(t *testing.T) {
	// A title of pure whitespace trims to empty and must be rejected by
	// the store's validation, on a real backend.
	svc := service.NewTaskService(memory.New(), nil)

	_, err := svc.Create(context.Background(), "   \t ", "")
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	ms := new(MockStore)
	ms.On("Get", mock.Anything, int64(5)).Return(nil, store.ErrNotFound)
	ms.On("Delete", mock.Anything, int64(5)).Return(store.ErrNotFound)

	svc := service.NewTaskService(ms, nil)

	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateTrimsPatchFields(t *testing.T) {
	title := "  padded title  "
	wantTitle := "padded title"

	ms := new(MockStore)
	ms.On("Update", mock.Anything, int64(3), store.TaskPatch{Title: &wantTitle}).
		Return(&model.Task{ID: 3, Title: wantTitle}, nil)

	svc := service.NewTaskService(ms, nil)
	updated, err := svc.Update(context.Background(), 3, store.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, wantTitle, updated.Title)

	ms.AssertExpectations(t)
}

func TestCompleteDelegates(t *testing.T) {
	ms := new(MockStore)
	ms.On("MarkCompleted", mock.Anything, int64(9)).
		Return(&model.Task{ID: 9, Title: "done deal", Completed: true}, nil)

	svc := service.NewTaskService(ms, nil)
	got, err := svc.Complete(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestListPassesThroughErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	ms := new(MockStore)
	ms.On("List", mock.Anything).Return(nil, boom)

	svc := service.NewTaskService(ms, nil)
	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
