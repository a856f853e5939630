package usecase

import (
	"context"
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/pkg/gcalendar"
)

// mirrorToCalendar copies a newly created task into Google Calendar.
// Failures are logged and never returned: the task is already persisted.
func (uc *implUseCase) mirrorToCalendar(ctx context.Context, t model.Task) string {
	if uc.calendar == nil || t.DueDate == nil {
		return ""
	}

	duration := defaultDuration
	if t.Duration != nil && *t.Duration > 0 {
		duration = *t.Duration
	}

	req := gcalendar.CreateEventRequest{
		CalendarID: uc.calendarID,
		Summary:    t.Title,
		StartTime:  *t.DueDate,
		EndTime:    t.DueDate.Add(time.Duration(duration) * time.Minute),
	}
	if t.Description != nil {
		req.Description = *t.Description
	}
	if name := uc.dateMath.Location().String(); name != "Local" {
		req.Timezone = name
	}

	event, err := uc.calendar.CreateEvent(ctx, req)
	if err != nil {
		uc.l.Warnf(ctx, "uc.mirrorToCalendar CreateEvent for task %d (non-fatal): %v", t.ID, err)
		return ""
	}

	return event.HtmlLink
}
