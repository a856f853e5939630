package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ai-task-manager/internal/model"
	repo "ai-task-manager/internal/task/repository"
)

const taskColumns = `id, title, description, due_date, duration, status, created_at, updated_at`

// CreateTask inserts a new task row and returns it with id and timestamps.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	query := `
		INSERT INTO task (title, description, due_date, duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		opt.Title, nullString(opt.Description), nullTime(opt.DueDate), nullInt(opt.Duration), string(opt.Status),
	))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToInsert, err)
	}
	return t, nil
}

// GetTask fetches a task by id.
func (r *implRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToGet, err)
	}
	return t, nil
}

// ListTasks returns tasks matching opt ordered by due date (nulls last) then id.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	mods, args := r.buildListQuery(opt)
	query := `SELECT ` + taskColumns + ` FROM task ` + mods

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
			return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTasks"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	return tasks, nil
}

// UpdateTask replaces every mutable column and refreshes updated_at.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	query := `
		UPDATE task
		SET title = $1, description = $2, due_date = $3, duration = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		opt.Title, nullString(opt.Description), nullTime(opt.DueDate), nullInt(opt.Duration), string(opt.Status), opt.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToUpdate, err)
	}
	return t, nil
}

// DeleteTask removes a task by id and returns the deleted row.
func (r *implRepository) DeleteTask(ctx context.Context, id int64) (model.Task, error) {
	query := `DELETE FROM task WHERE id = $1 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToDelete, err)
	}
	return t, nil
}
