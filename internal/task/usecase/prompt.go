package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-task-manager/internal/model"
)

const dateOnlyLayout = "2006-01-02"

// snapshotTask is the projection of an existing task shown to the model.
type snapshotTask struct {
	Title    string           `json:"title"`
	DueDate  string           `json:"dueDate,omitempty"`
	Duration *int             `json:"duration"`
	Status   model.TaskStatus `json:"status"`
}

const extractInstructions = `You are a scheduling assistant that turns a short request into one task record.

Weigh the following when deciding on the task attributes:
- Priority: a task described as urgent or high priority should be scheduled as early as possible.
- Availability: look at the due dates and durations of the existing tasks to find a free slot.
- Context: the new task should not overlap existing tasks and should fit logically into the schedule.
- Duration: estimate how long the task takes in minutes from its complexity. Use 60 when nothing suggests otherwise.
- Due date: resolve relative expressions such as "tomorrow" or "next week" against today's date. When no date is given, pick the nearest available date from the existing tasks or default to tomorrow.
- Location: keep any place or resource the task depends on in the description.

Attributes to extract:
- title: a short title for the task.
- description: a detailed description, or "No description provided" when there is nothing to add.
- dueDate: the due date in ISO 8601 format, or null.
- duration: the estimated duration in minutes, or null.
- status: one of "pending", "in_progress" or "completed". Use "pending" unless the request says otherwise.`

const extractOutputShape = `{
  "title": "string",
  "description": "string or null",
  "dueDate": "string (ISO 8601) or null",
  "duration": "number or null",
  "status": "pending | in_progress | completed"
}`

// buildSnapshot projects existing tasks into the prompt context.
func buildSnapshot(tasks []model.Task, loc *time.Location) []snapshotTask {
	snap := make([]snapshotTask, 0, len(tasks))
	for _, t := range tasks {
		s := snapshotTask{
			Title:    t.Title,
			Duration: t.Duration,
			Status:   t.Status,
		}
		if t.DueDate != nil {
			s.DueDate = t.DueDate.In(loc).Format(time.RFC3339)
		}
		snap = append(snap, s)
	}
	return snap
}

// buildExtractPrompt assembles the single prompt sent to the generator.
func buildExtractPrompt(text string, snapshot []snapshotTask, today time.Time) (string, error) {
	snapJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal task snapshot: %w", err)
	}

	var b strings.Builder
	b.WriteString(extractInstructions)
	b.WriteString("\n\nToday's date: ")
	b.WriteString(today.Format(dateOnlyLayout))
	b.WriteString("\n\nExisting tasks:\n")
	b.Write(snapJSON)
	b.WriteString("\n\nUser request:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"\n\nRespond with a single JSON object and nothing else, using exactly this structure:\n")
	b.WriteString(extractOutputShape)
	b.WriteString("\n")

	return b.String(), nil
}
