package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/middleware"
	"ai-task-manager/internal/task"
	tgDelivery "ai-task-manager/internal/task/delivery/telegram"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage, pinged by the readiness probe
	db *sql.DB

	// Task domain
	taskUC          task.UseCase
	dateMath        *datemath.Parser
	telegramHandler tgDelivery.Handler

	mw middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	DB *sql.DB

	TaskUseCase task.UseCase
	DateMath    *datemath.Parser
	// TelegramHandler is nil when no bot token is configured.
	TelegramHandler tgDelivery.Handler

	Middleware middleware.Config
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		db:              cfg.DB,
		taskUC:          cfg.TaskUseCase,
		dateMath:        cfg.DateMath,
		telegramHandler: cfg.TelegramHandler,
		mw:              middleware.New(logger, cfg.Middleware),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task use case is required")
	}
	if srv.dateMath == nil {
		return errors.New("date parser is required")
	}
	return nil
}
