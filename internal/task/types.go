package task

import (
	"time"

	"ai-task-manager/internal/model"
)

// --- UseCase Inputs ---

type CreateInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Duration    *int
	Status      model.TaskStatus
}

type ListInput struct {
	Status  model.TaskStatus
	DueFrom *time.Time
	DueTo   *time.Time
}

// UpdateInput replaces every mutable field of the task.
// Nil optional fields clear the stored value.
type UpdateInput struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Duration    *int
	Status      model.TaskStatus
}

type ExtractInput struct {
	Text string
}

type CalendarInput struct {
	From time.Time
	To   time.Time
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Task model.Task
}

type ListOutput struct {
	Tasks []model.Task
	Total int
}

type DetailOutput struct {
	Task model.Task
}

type UpdateOutput struct {
	Task model.Task
}

type DeleteOutput struct {
	Task model.Task
}

type ExtractOutput struct {
	Task         model.Task
	CalendarLink string // empty when the calendar mirror is disabled or failed
}

// StatusCounts counts tasks per status.
type StatusCounts struct {
	Pending    int
	InProgress int
	Completed  int
}

// Add increments the counter matching s.
func (c *StatusCounts) Add(s model.TaskStatus) {
	switch s {
	case model.TaskStatusPending:
		c.Pending++
	case model.TaskStatusInProgress:
		c.InProgress++
	case model.TaskStatusCompleted:
		c.Completed++
	}
}

type CalendarDay struct {
	Date   time.Time // local midnight
	Tasks  []model.Task
	Counts StatusCounts
}

type CalendarOutput struct {
	Days []CalendarDay
}

type DigestOutput struct {
	Date    time.Time
	Today   []model.Task
	Overdue []model.Task
}
