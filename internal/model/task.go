package model

import (
	"time"
)

// Task represents one to-do item. The ID is assigned by the store on
// creation and is never reused, even after the task is deleted.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
