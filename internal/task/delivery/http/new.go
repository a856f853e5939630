package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	CreateAI(c *gin.Context)
	List(c *gin.Context)
	Calendar(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l     log.Logger
	uc    task.UseCase
	dates *datemath.Parser
	now   func() time.Time
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase, dates *datemath.Parser) Handler {
	return &handler{
		l:     l,
		uc:    uc,
		dates: dates,
		now:   time.Now,
	}
}
