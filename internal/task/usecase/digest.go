package usecase

import (
	"context"
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

// Digest returns the unfinished tasks due on now's local day and those
// whose due date falls before that day.
func (uc *implUseCase) Digest(ctx context.Context, now time.Time) (task.DigestOutput, error) {
	start := uc.dateMath.StartOfDay(now)
	end := start.AddDate(0, 0, 1)

	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{DueTo: &end})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Digest ListTasks: %v", err)
		return task.DigestOutput{}, mapRepoError(err)
	}

	out := task.DigestOutput{Date: start}
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == model.TaskStatusCompleted {
			continue
		}
		if t.DueDate.Before(start) {
			out.Overdue = append(out.Overdue, t)
		} else {
			out.Today = append(out.Today, t)
		}
	}

	return out, nil
}
