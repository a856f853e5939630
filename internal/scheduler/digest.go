package scheduler

import (
	"context"
	"fmt"
	"time"

	"ai-task-manager/internal/task"
	tgDelivery "ai-task-manager/internal/task/delivery/telegram"
	pkgTelegram "ai-task-manager/pkg/telegram"
)

// DigestJob sends the daily task digest to one Telegram chat.
type DigestJob struct {
	uc     task.UseCase
	sender pkgTelegram.Sender
	chatID int64
	loc    *time.Location
	now    func() time.Time
}

// NewDigestJob creates a DigestJob.
func NewDigestJob(uc task.UseCase, sender pkgTelegram.Sender, chatID int64, loc *time.Location) *DigestJob {
	return &DigestJob{
		uc:     uc,
		sender: sender,
		chatID: chatID,
		loc:    loc,
		now:    time.Now,
	}
}

// Run builds today's digest and sends it.
func (j *DigestJob) Run(ctx context.Context) error {
	out, err := j.uc.Digest(ctx, j.now())
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	text := tgDelivery.FormatDigest(out, j.loc)
	if err := j.sender.SendMessageWithMode(ctx, j.chatID, text, pkgTelegram.ParseModeMarkdown); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
