package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"ai-task-manager/internal/model"
)

const dueLayout = "2006-01-02 15:04"

type taskView struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Status      model.TaskStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func newTaskView(t model.Task, loc *time.Location) taskView {
	v := taskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.In(loc),
		UpdatedAt:   t.UpdatedAt.In(loc),
	}
	if t.DueDate != nil {
		d := t.DueDate.In(loc)
		v.DueDate = &d
	}
	return v
}

func newTaskViews(tasks []model.Task, loc *time.Location) []taskView {
	out := make([]taskView, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskView(t, loc)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTaskTable(tasks []model.Task, loc *time.Location, now time.Time) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tMIN\tTITLE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.In(loc).Format(dueLayout)
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		minutes := "-"
		if t.Duration != nil {
			minutes = fmt.Sprint(*t.Duration)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, due, minutes, t.Title)
	}
	tw.Flush()
	return b.String()
}

func formatTaskDetail(t model.Task, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:       %s\n", t.Title)
	fmt.Fprintf(&b, "Status:      %s\n", t.Status)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due:         %s\n", t.DueDate.In(loc).Format(dueLayout))
	}
	if t.Duration != nil {
		fmt.Fprintf(&b, "Duration:    %d min\n", *t.Duration)
	}
	if t.Description != nil && *t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", *t.Description)
	}
	return b.String()
}
