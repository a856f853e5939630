package sqlite

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task/repository"
	"ai-task-manager/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  log.Logger
}

// New creates a gorm-backed task Repository.
func New(db *gorm.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("task/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Migrate creates or updates the task table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&taskRow{}); err != nil {
		return fmt.Errorf("migrate task table: %w", err)
	}
	return nil
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/sqlite.%s", method)
}

// taskRow is the gorm mapping of the task table.
type taskRow struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"not null"`
	Description *string
	DueDate     *time.Time `gorm:"index"`
	Duration    *int       `gorm:"check:duration >= 0"`
	Status      string     `gorm:"not null;default:pending;check:status IN ('pending','in_progress','completed')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRow) TableName() string { return "task" }

func (row taskRow) toModel() model.Task {
	return model.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Duration:    row.Duration,
		Status:      model.TaskStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
