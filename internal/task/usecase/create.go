package usecase

import (
	"context"
	"strings"

	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

// Create validates and persists a manually entered task.
func (uc *implUseCase) Create(ctx context.Context, input task.CreateInput) (task.CreateOutput, error) {
	opt := repo.CreateTaskOptions{
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
		return task.CreateOutput{}, err
	}

	t, err := uc.repo.CreateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return task.CreateOutput{}, mapRepoError(err)
	}

	return task.CreateOutput{Task: t}, nil
}
