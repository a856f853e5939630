package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

const (
	defaultDescription = "No description provided"
	defaultDuration    = 60 // minutes
)

// ExtractAndCreate turns free text into a persisted task.
// The flow is: snapshot -> prompt -> generate -> sanitize -> parse -> resolve -> insert.
// Insert is the last fallible step, so a failure never leaves a partial task behind.
func (uc *implUseCase) ExtractAndCreate(ctx context.Context, input task.ExtractInput) (task.ExtractOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.ExtractOutput{}, fmt.Errorf("%w: text is required", task.ErrInvalidInput)
	}

	now := uc.now()
	loc := uc.dateMath.Location()

	existing, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExtractAndCreate ListTasks: %v", err)
		return task.ExtractOutput{}, fmt.Errorf("%w: %w", task.ErrStore, err)
	}

	snapshot := buildSnapshot(existing, loc)
	prompt, err := buildExtractPrompt(text, snapshot, now.In(loc))
	if err != nil {
		return task.ExtractOutput{}, fmt.Errorf("%w: %w", task.ErrInvalidInput, err)
	}

	reply, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExtractAndCreate Generate: %v", err)
		return task.ExtractOutput{}, fmt.Errorf("%w: %w", task.ErrGeneration, err)
	}

	fields, err := parseExtracted(sanitizeJSONResponse(reply))
	if err != nil {
		uc.l.Warnf(ctx, "uc.ExtractAndCreate unparsable reply %q: %v", truncate(reply, 200), err)
		return task.ExtractOutput{}, fmt.Errorf("%w: %w", task.ErrMalformedOutput, err)
	}

	dueDates := make([]*time.Time, len(existing))
	for i := range existing {
		dueDates[i] = existing[i].DueDate
	}

	opt, err := uc.resolveExtracted(fields, dueDates, now)
	if err != nil {
		return task.ExtractOutput{}, err
	}

	created, err := uc.repo.CreateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExtractAndCreate CreateTask: %v", err)
		return task.ExtractOutput{}, fmt.Errorf("%w: %w", task.ErrStore, err)
	}

	uc.l.Infof(ctx, "uc.ExtractAndCreate created task id=%d title=%q", created.ID, created.Title)

	return task.ExtractOutput{
		Task:         created,
		CalendarLink: uc.mirrorToCalendar(ctx, created),
	}, nil
}

// parseExtracted decodes the sanitized reply into its top-level fields.
func parseExtracted(text string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("reply is not a JSON object")
	}
	return fields, nil
}

// resolveExtracted applies defaults and the due-date heuristics to the
// model's fields, then validates the resulting record.
func (uc *implUseCase) resolveExtracted(fields map[string]json.RawMessage, dueDates []*time.Time, now time.Time) (repo.CreateTaskOptions, error) {
	verr := &task.ValidationError{}

	title, _, err := optionalString(fields, "title")
	if err != nil {
		verr.Add("title", err.Error())
	}

	description := defaultDescription
	if s, ok, err := optionalString(fields, "description"); err != nil {
		verr.Add("description", err.Error())
	} else if ok && strings.TrimSpace(s) != "" {
		description = s
	}

	var dueDate time.Time
	if s, ok, err := optionalString(fields, "dueDate"); err != nil {
		verr.Add("dueDate", err.Error())
	} else if ok && strings.TrimSpace(s) != "" {
		parsed, perr := uc.dateMath.ParseDueDate(s, now)
		if perr != nil {
			verr.Add("dueDate", fmt.Sprintf("unrecognized date %q", s))
		} else {
			dueDate = uc.dateMath.ValidateDueDate(parsed, now)
		}
	} else {
		dueDate = uc.dateMath.SuggestDueDate(dueDates, now)
	}

	duration := defaultDuration
	if n, ok, err := optionalInt(fields, "duration"); err != nil {
		verr.Add("duration", err.Error())
	} else if ok {
		duration = n
	}

	status := model.TaskStatusPending
	if s, ok, err := optionalString(fields, "status"); err != nil {
		verr.Add("status", err.Error())
	} else if ok && s != "" {
		status = model.TaskStatus(strings.TrimSpace(s))
	}

	opt := repo.CreateTaskOptions{
		Title:       strings.TrimSpace(title),
		Description: &description,
		DueDate:     &dueDate,
		Duration:    &duration,
		Status:      status,
	}

	if err := uc.validateRecord(taskRecord{
		Title:       opt.Title,
		Description: opt.Description,
		Duration:    opt.Duration,
		Status:      string(opt.Status),
	}); err != nil {
		var schemaErr *task.ValidationError
		if !errors.As(err, &schemaErr) {
			return repo.CreateTaskOptions{}, err
		}
		for f, msg := range schemaErr.Fields {
			verr.Add(f, msg)
		}
	}

	if !verr.Empty() {
		return repo.CreateTaskOptions{}, verr
	}
	return opt, nil
}

// optionalString reads a string field. ok is false when the field is absent or null.
func optionalString(fields map[string]json.RawMessage, key string) (s string, ok bool, err error) {
	raw, present := fields[key]
	if !present || isJSONNull(raw) {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, fmt.Errorf("must be a string")
	}
	return s, true, nil
}

// optionalInt reads a whole-number field. ok is false when the field is absent or null.
func optionalInt(fields map[string]json.RawMessage, key string) (n int, ok bool, err error) {
	raw, present := fields[key]
	if !present || isJSONNull(raw) {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false, fmt.Errorf("must be a number")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false, fmt.Errorf("must be a whole number of minutes")
	}
	return int(f), true, nil
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
