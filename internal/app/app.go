// Package app wires the task domain from configuration. It is shared by the
// API server and the taskctl CLI so both talk to the same store the same way.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-task-manager/config"
	"ai-task-manager/config/postgre"
	"ai-task-manager/config/sqlite"
	"ai-task-manager/internal/task"
	"ai-task-manager/internal/task/repository"
	pgRepo "ai-task-manager/internal/task/repository/postgre"
	sqliteRepo "ai-task-manager/internal/task/repository/sqlite"
	"ai-task-manager/internal/task/usecase"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/gcalendar"
	"ai-task-manager/pkg/llmprovider"
	"ai-task-manager/pkg/log"
)

// App holds the long-lived task domain dependencies.
type App struct {
	Config      *config.Config
	Location    *time.Location
	DateMath    *datemath.Parser
	DB          *sql.DB
	TaskUseCase task.UseCase

	l log.Logger
}

// New opens the store, builds the provider chain and assembles the task UseCase.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("app: timezone: %w", err)
	}
	dateMath := datemath.NewParserInLocation(loc)

	repo, db, err := openStore(ctx, cfg.Database, l)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(ctx, cfg, l)
	if err != nil {
		db.Close()
		return nil, err
	}

	ucCfg := usecase.Config{CalendarID: cfg.GoogleCalendar.CalendarID}
	if client := newCalendar(ctx, cfg.GoogleCalendar, l); client != nil {
		ucCfg.Calendar = client
	}

	return &App{
		Config:      cfg,
		Location:    loc,
		DateMath:    dateMath,
		DB:          db,
		TaskUseCase: usecase.New(l, repo, generator, dateMath, ucCfg),
		l:           l,
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// openStore returns the repository for cfg.Driver along with its raw handle,
// which the readiness probe pings.
func openStore(ctx context.Context, cfg config.DatabaseConfig, l log.Logger) (repository.Repository, *sql.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgre.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		if err := pgRepo.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		l.Infof(ctx, "Task store: postgres")
		return pgRepo.New(db, l), db, nil

	case config.DriverSQLite:
		gdb, err := sqlite.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		db, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("app: sqlite handle: %w", err)
		}
		if err := sqliteRepo.Migrate(gdb); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		l.Infof(ctx, "Task store: sqlite (%s)", cfg.DSN)
		return sqliteRepo.New(gdb, l), db, nil

	default:
		return nil, nil, fmt.Errorf("app: unsupported database driver %q", cfg.Driver)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, l log.Logger) (*llmprovider.Generator, error) {
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("app: llm providers: %w", err)
	}

	managerCfg, err := llmprovider.NewManagerConfig(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	opts := []llmprovider.GenerateOption{llmprovider.WithJSONMode()}
	if cfg.Extractor.Temperature > 0 {
		opts = append(opts, llmprovider.WithTemperature(cfg.Extractor.Temperature))
	}
	if cfg.Extractor.MaxTokens > 0 {
		opts = append(opts, llmprovider.WithMaxTokens(cfg.Extractor.MaxTokens))
	}

	for _, p := range providers {
		l.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	return llmprovider.NewGenerator(llmprovider.NewManager(providers, managerCfg, l), opts...), nil
}

// newCalendar returns nil when the mirror is not configured or cannot start.
func newCalendar(ctx context.Context, cfg config.GoogleCalendarConfig, l log.Logger) *gcalendar.Client {
	if cfg.CredentialsPath == "" {
		return nil
	}

	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		if errors.Is(err, gcalendar.ErrMissingToken) {
			l.Warn(ctx, "Run `go run ./scripts/gcal-auth` to generate the token file")
		}
		return nil
	}

	l.Infof(ctx, "Google Calendar mirror enabled (calendar %s)", cfg.CalendarID)
	return client
}
