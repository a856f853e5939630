package telegram

import (
	"fmt"
	"strings"
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	pkgTelegram "ai-task-manager/pkg/telegram"
)

const (
	msgStart = "👋 Welcome to *AI Task Manager*!\n\n" +
		"Send me what you need to do in plain words and I will turn it into a scheduled task.\n\n" +
		"_Example: \"Prepare the quarterly report by Friday, about 2 hours\"_"
	msgHelp = "*Commands*\n" +
		"/list - upcoming unfinished tasks\n" +
		"/today - tasks due today and overdue ones\n" +
		"/help - this message\n\n" +
		"Any other message is turned into a new task."
	msgWorking = "⏳ Working on it..."
	msgNoTasks = "🎉 Nothing upcoming. Enjoy your free time!"

	displayLayout = "Mon Jan 2, 15:04"
	listLimit     = 10
)

// formatCreated renders the reply for a freshly extracted task.
func formatCreated(out task.ExtractOutput, loc *time.Location) string {
	t := out.Task
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Created task #%d: *%s*\n", t.ID, pkgTelegram.EscapeMarkdown(t.Title))
	if t.DueDate != nil {
		fmt.Fprintf(&b, "📅 %s\n", t.DueDate.In(loc).Format(displayLayout))
	}
	if t.Duration != nil {
		fmt.Fprintf(&b, "⏱ %d min\n", *t.Duration)
	}
	fmt.Fprintf(&b, "📌 %s", statusLabel(t.Status))
	if t.Description != nil && *t.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", pkgTelegram.EscapeMarkdown(*t.Description))
	}
	if out.CalendarLink != "" {
		fmt.Fprintf(&b, "\n\n[Open in Google Calendar](%s)", out.CalendarLink)
	}
	return b.String()
}

// formatList renders a short list of tasks, one per line.
func formatList(header string, tasks []model.Task, loc *time.Location) string {
	if len(tasks) == 0 {
		return msgNoTasks
	}

	var b strings.Builder
	b.WriteString(header)
	for i, t := range tasks {
		if i == listLimit {
			fmt.Fprintf(&b, "\n…and %d more", len(tasks)-listLimit)
			break
		}
		b.WriteString("\n")
		b.WriteString(formatLine(t, loc))
	}
	return b.String()
}

func formatLine(t model.Task, loc *time.Location) string {
	line := fmt.Sprintf("• #%d *%s*", t.ID, pkgTelegram.EscapeMarkdown(t.Title))
	if t.DueDate != nil {
		line += " (" + t.DueDate.In(loc).Format(displayLayout) + ")"
	}
	if t.Status == model.TaskStatusInProgress {
		line += " 🔄"
	}
	return line
}

// FormatDigest renders the daily digest message.
func FormatDigest(out task.DigestOutput, loc *time.Location) string {
	if len(out.Today) == 0 && len(out.Overdue) == 0 {
		return fmt.Sprintf("☀️ *%s*\nNo tasks due today. %s", out.Date.In(loc).Format("Monday, Jan 2"), msgNoTasks)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "☀️ *%s*", out.Date.In(loc).Format("Monday, Jan 2"))
	if len(out.Today) > 0 {
		b.WriteString("\n\n")
		b.WriteString(formatList("*Due today*", out.Today, loc))
	}
	if len(out.Overdue) > 0 {
		b.WriteString("\n\n")
		b.WriteString(formatList("*Overdue*", out.Overdue, loc))
	}
	return b.String()
}

func statusLabel(s model.TaskStatus) string {
	switch s {
	case model.TaskStatusInProgress:
		return "in progress"
	case model.TaskStatusCompleted:
		return "completed"
	default:
		return "pending"
	}
}
