package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"ai-task-manager/internal/task/repository"
	"ai-task-manager/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed task Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("task/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

const schema = `
CREATE TABLE IF NOT EXISTS task (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	due_date    TIMESTAMPTZ,
	duration    INTEGER CHECK (duration >= 0),
	status      TEXT NOT NULL DEFAULT 'pending'
	            CHECK (status IN ('pending', 'in_progress', 'completed')),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate bootstraps the task table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create task table: %w", err)
	}
	return nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/postgre.%s", method)
}
