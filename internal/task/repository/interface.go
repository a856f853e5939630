package repository

import (
	"context"

	"ai-task-manager/internal/model"
)

// Repository is the data access interface for the task table.
// Missing ids surface as ErrNotFound on get, update and delete.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) (model.Task, error)
}
