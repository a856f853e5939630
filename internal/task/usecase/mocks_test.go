package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-task-manager/internal/model"
	repo "ai-task-manager/internal/task/repository"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/gcalendar"
)

type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// mockRepo is an in-memory task store.
type mockRepo struct {
	tasks   []model.Task
	nextID  int64
	listErr error
	failErr error

	creates  int
	lastList repo.ListTasksOptions
}

func (m *mockRepo) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	if m.failErr != nil {
		return model.Task{}, m.failErr
	}
	m.creates++
	m.nextID++
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	t := model.Task{
		ID:          m.nextID,
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     opt.DueDate,
		Duration:    opt.Duration,
		Status:      opt.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *mockRepo) GetTask(ctx context.Context, id int64) (model.Task, error) {
	if m.failErr != nil {
		return model.Task{}, m.failErr
	}
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, repo.ErrNotFound
}

func (m *mockRepo) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	m.lastList = opt
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []model.Task{}
	for _, t := range m.tasks {
		if opt.Status != "" && t.Status != opt.Status {
			continue
		}
		if opt.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*opt.DueFrom)) {
			continue
		}
		if opt.DueTo != nil && (t.DueDate == nil || !t.DueDate.Before(*opt.DueTo)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockRepo) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	if m.failErr != nil {
		return model.Task{}, m.failErr
	}
	for i, t := range m.tasks {
		if t.ID == opt.ID {
			t.Title = opt.Title
			t.Description = opt.Description
			t.DueDate = opt.DueDate
			t.Duration = opt.Duration
			t.Status = opt.Status
			t.UpdatedAt = t.UpdatedAt.Add(time.Minute)
			m.tasks[i] = t
			return t, nil
		}
	}
	return model.Task{}, repo.ErrNotFound
}

func (m *mockRepo) DeleteTask(ctx context.Context, id int64) (model.Task, error) {
	if m.failErr != nil {
		return model.Task{}, m.failErr
	}
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return t, nil
		}
	}
	return model.Task{}, repo.ErrNotFound
}

type mockGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.reply, m.err
}

type mockCalendar struct {
	err     error
	lastReq gcalendar.CreateEventRequest
	calls   int
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: "evt-1", HtmlLink: "https://calendar.example/evt-1"}, nil
}

var errDB = errors.New("connection refused")

// fixedNow is 2026-03-10 14:30 UTC.
var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestUseCase(r *mockRepo, g *mockGenerator, cal CalendarClient) (*implUseCase, *mockLogger) {
	l := &mockLogger{}
	uc := newUseCase(l, r, g, datemath.NewParserInLocation(time.UTC), Config{Calendar: cal, CalendarID: "primary"})
	uc.now = func() time.Time { return fixedNow }
	return uc, l
}

func ptr[T any](v T) *T { return &v }
