package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/datemath"
	pkgLog "ai-task-manager/pkg/log"
	pkgTelegram "ai-task-manager/pkg/telegram"
)

const defaultProcessTimeout = 2 * time.Minute

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l       pkgLog.Logger
	uc      task.UseCase
	bot     pkgTelegram.Sender
	dates   *datemath.Parser
	timeout time.Duration
	now     func() time.Time
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc task.UseCase, bot pkgTelegram.Sender, dates *datemath.Parser) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		dates:   dates,
		timeout: defaultProcessTimeout,
		now:     time.Now,
	}
}
