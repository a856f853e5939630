package usecase

import (
	"context"

	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

// List returns every task matching the optional filters.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	if input.Status != "" && !input.Status.IsValid() {
		return task.ListOutput{}, task.NewValidationError("status", "must be one of "+statusList())
	}
	if input.DueFrom != nil && input.DueTo != nil && !input.DueTo.After(*input.DueFrom) {
		return task.ListOutput{}, task.NewValidationError("dueTo", "must be after dueFrom")
	}

	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{
		Status:  input.Status,
		DueFrom: input.DueFrom,
		DueTo:   input.DueTo,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, mapRepoError(err)
	}

	return task.ListOutput{Tasks: tasks, Total: len(tasks)}, nil
}
