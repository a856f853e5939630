package usecase

import (
	"errors"
	"fmt"

	"ai-task-manager/internal/task"
	"ai-task-manager/internal/task/repository"
)

// mapRepoError converts repository errors into task domain errors.
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return task.ErrNotFound
	}
	return fmt.Errorf("%w: %w", task.ErrStore, err)
}
