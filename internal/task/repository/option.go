package repository

import (
	"time"

	"ai-task-manager/internal/model"
)

// CreateTaskOptions holds the fields of a new task row.
type CreateTaskOptions struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Duration    *int
	Status      model.TaskStatus
}

// ListTasksOptions filters a task listing. Zero values disable a filter.
// Results are ordered by due date (nulls last) then id.
type ListTasksOptions struct {
	Status  model.TaskStatus
	DueFrom *time.Time // inclusive
	DueTo   *time.Time // exclusive
}

// UpdateTaskOptions replaces every mutable column of a task.
type UpdateTaskOptions struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Duration    *int
	Status      model.TaskStatus
}
