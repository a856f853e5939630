package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a single row of the task table.
// Description, DueDate and Duration are optional; nil is distinct from the zero value.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Duration    *int // minutes
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task has a due date before now and is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}
