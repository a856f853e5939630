package postgre

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ai-task-manager/internal/model"
	repo "ai-task-manager/internal/task/repository"
)

// buildListQuery builds the WHERE + ORDER clause for ListTasks.
func (r *implRepository) buildListQuery(opt repo.ListTasksOptions) (string, []any) {
	var parts []string
	var conditions []string
	var args []any
	idx := 1

	if opt.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, string(opt.Status))
		idx++
	}
	if opt.DueFrom != nil {
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", idx))
		args = append(args, *opt.DueFrom)
		idx++
	}
	if opt.DueTo != nil {
		conditions = append(conditions, fmt.Sprintf("due_date < $%d", idx))
		args = append(args, *opt.DueTo)
	}

	if len(conditions) > 0 {
		parts = append(parts, "WHERE "+strings.Join(conditions, " AND "))
	}
	parts = append(parts, "ORDER BY due_date ASC NULLS LAST, id ASC")

	return strings.Join(parts, " "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t           model.Task
		description sql.NullString
		dueDate     sql.NullTime
		duration    sql.NullInt64
		status      string
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &dueDate, &duration, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return model.Task{}, err
	}

	t.Status = model.TaskStatus(status)
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if duration.Valid {
		d := int(duration.Int64)
		t.Duration = &d
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
