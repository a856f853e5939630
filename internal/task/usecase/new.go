package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"ai-task-manager/internal/task"
	"ai-task-manager/internal/task/repository"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/gcalendar"
	pkgLog "ai-task-manager/pkg/log"
)

// CalendarClient mirrors created tasks into an external calendar.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	generator  task.Generator
	dateMath   *datemath.Parser
	calendar   CalendarClient
	calendarID string
	validate   *validator.Validate
	now        func() time.Time
}

// Config carries the optional collaborators of the task UseCase.
type Config struct {
	// Calendar is nil when the Google Calendar mirror is disabled.
	Calendar   CalendarClient
	CalendarID string
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	generator task.Generator,
	dateMath *datemath.Parser,
	cfg Config,
) task.UseCase {
	return newUseCase(l, repo, generator, dateMath, cfg)
}

func newUseCase(
	l pkgLog.Logger,
	repo repository.Repository,
	generator task.Generator,
	dateMath *datemath.Parser,
	cfg Config,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		generator:  generator,
		dateMath:   dateMath,
		calendar:   cfg.Calendar,
		calendarID: cfg.CalendarID,
		validate:   newValidator(),
		now:        time.Now,
	}
}
