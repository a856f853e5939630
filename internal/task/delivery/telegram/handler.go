package telegram

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	pkgLog "ai-task-manager/pkg/log"
	pkgResponse "ai-task-manager/pkg/response"
	pkgTelegram "ai-task-manager/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It acknowledges immediately and processes the message in a background
// goroutine, since extraction can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	requestID := pkgLog.RequestIDFromContext(ctx)

	go func() {
		// Detached from the request context, which is cancelled once we respond.
		bgCtx, cancel := context.WithTimeout(pkgLog.WithRequestID(context.Background(), requestID), h.timeout)
		defer cancel()

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	switch command(text) {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, chatID, msgStart, pkgTelegram.ParseModeMarkdown)
	case "/help":
		return h.bot.SendMessageWithMode(ctx, chatID, msgHelp, pkgTelegram.ParseModeMarkdown)
	case "/list":
		return h.handleList(ctx, chatID)
	case "/today":
		return h.handleToday(ctx, chatID)
	}

	if err := h.bot.SendMessage(ctx, chatID, msgWorking); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	out, err := h.uc.ExtractAndCreate(ctx, task.ExtractInput{Text: text})
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: ExtractAndCreate failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}

	return h.bot.SendMessageWithMode(ctx, chatID, formatCreated(out, h.dates.Location()), pkgTelegram.ParseModeMarkdown)
}

// handleList replies with unfinished tasks due from today onwards.
func (h *handler) handleList(ctx context.Context, chatID int64) error {
	from := h.dates.StartOfDay(h.now())
	out, err := h.uc.List(ctx, task.ListInput{DueFrom: &from})
	if err != nil {
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}

	open := make([]model.Task, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		if t.Status != model.TaskStatusCompleted {
			open = append(open, t)
		}
	}

	return h.bot.SendMessageWithMode(ctx, chatID, formatList("*Upcoming tasks*", open, h.dates.Location()), pkgTelegram.ParseModeMarkdown)
}

// handleToday replies with the same digest the scheduler sends.
func (h *handler) handleToday(ctx context.Context, chatID int64) error {
	out, err := h.uc.Digest(ctx, h.now())
	if err != nil {
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}
	return h.bot.SendMessageWithMode(ctx, chatID, FormatDigest(out, h.dates.Location()), pkgTelegram.ParseModeMarkdown)
}

// command returns the bot command in text, without arguments or a @botname suffix.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}
