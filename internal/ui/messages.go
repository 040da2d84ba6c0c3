package ui

import (
	"github.com/maru/gestor/internal/model"
)

// Messages passed between commands and the root model

// TasksLoadedMsg contains the reloaded task list
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

// TaskSavedMsg indicates a task was created or updated
type TaskSavedMsg struct {
	Task *model.Task
	Err  error
}

// TaskDeletedMsg indicates a task was deleted
type TaskDeletedMsg struct {
	TaskID int64
	Err    error
}

// TaskCompletedMsg indicates a task was marked done
type TaskCompletedMsg struct {
	Task *model.Task
	Err  error
}
