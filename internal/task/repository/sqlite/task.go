package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ai-task-manager/internal/model"
	repo "ai-task-manager/internal/task/repository"
)

// CreateTask inserts a new task; gorm fills id and both timestamps.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	row := taskRow{
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     utc(opt.DueDate),
		Duration:    opt.Duration,
		Status:      string(opt.Status),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToInsert, err)
	}
	return row.toModel(), nil
}

// GetTask fetches a task by id.
func (r *implRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row, err := r.first(ctx, r.db.WithContext(ctx), id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
			return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToGet, err)
		}
		return model.Task{}, err
	}
	return row.toModel(), nil
}

// ListTasks returns tasks matching opt ordered by due date (nulls last) then id.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&taskRow{})
	if opt.Status != "" {
		q = q.Where("status = ?", string(opt.Status))
	}
	if opt.DueFrom != nil {
		q = q.Where("due_date >= ?", opt.DueFrom.UTC())
	}
	if opt.DueTo != nil {
		q = q.Where("due_date < ?", opt.DueTo.UTC())
	}

	var rows []taskRow
	if err := q.Order("due_date IS NULL, due_date ASC, id ASC").Find(&rows).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}

	tasks := make([]model.Task, len(rows))
	for i, row := range rows {
		tasks[i] = row.toModel()
	}
	return tasks, nil
}

// UpdateTask replaces every mutable column. Save writes nil pointers as NULL.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	var out taskRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := r.first(ctx, tx, opt.ID)
		if err != nil {
			return err
		}

		row.Title = opt.Title
		row.Description = opt.Description
		row.DueDate = utc(opt.DueDate)
		row.Duration = opt.Duration
		row.Status = string(opt.Status)

		if err := tx.Omit("created_at").Save(&row).Error; err != nil {
			return err
		}
		out = row
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToUpdate, err)
	}
	return out.toModel(), nil
}

// DeleteTask removes a task and returns the deleted row.
func (r *implRepository) DeleteTask(ctx context.Context, id int64) (model.Task, error) {
	var out taskRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := r.first(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&taskRow{}, id).Error; err != nil {
			return err
		}
		out = row
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return model.Task{}, fmt.Errorf("%w: %w", repo.ErrFailedToDelete, err)
	}
	return out.toModel(), nil
}

func (r *implRepository) first(ctx context.Context, db *gorm.DB, id int64) (taskRow, error) {
	var row taskRow
	err := db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskRow{}, repo.ErrNotFound
	}
	return row, err
}

// utc normalizes due dates before they reach SQLite, which stores times as
// text with their offset and compares them as strings.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
