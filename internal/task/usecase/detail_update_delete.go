package usecase

import (
	"context"
	"errors"
	"strings"

	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

// Detail retrieves a single task by id.
func (uc *implUseCase) Detail(ctx context.Context, id int64) (task.DetailOutput, error) {
	t, err := uc.repo.GetTask(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.Detail GetTask: %v", err)
		}
		return task.DetailOutput{}, mapRepoError(err)
	}
	return task.DetailOutput{Task: t}, nil
}

// Update replaces all mutable fields of a task.
func (uc *implUseCase) Update(ctx context.Context, input task.UpdateInput) (task.UpdateOutput, error) {
	opt := repo.UpdateTaskOptions{
		ID:          input.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Duration:    input.Duration,
		Status:      normalizeStatus(input.Status),
	}

	if err := uc.validateRecord(taskRecord{
		Title:       opt.Title,
		Description: opt.Description,
		Duration:    opt.Duration,
		Status:      string(opt.Status),
	}); err != nil {
		return task.UpdateOutput{}, err
	}

	t, err := uc.repo.UpdateTask(ctx, opt)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		}
		return task.UpdateOutput{}, mapRepoError(err)
	}
	return task.UpdateOutput{Task: t}, nil
}

// Delete removes a task and returns what was deleted.
func (uc *implUseCase) Delete(ctx context.Context, id int64) (task.DeleteOutput, error) {
	t, err := uc.repo.DeleteTask(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.Delete DeleteTask: %v", err)
		}
		return task.DeleteOutput{}, mapRepoError(err)
	}
	return task.DeleteOutput{Task: t}, nil
}
