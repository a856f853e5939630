package telegram

import (
	"errors"
	"sort"
	"strings"

	"ai-task-manager/internal/task"
)

// errorMessage returns a user-facing reply for a failed request.
func errorMessage(err error) string {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]string, 0, len(verr.Fields))
		for f, msg := range verr.Fields {
			fields = append(fields, f+" "+msg)
		}
		sort.Strings(fields)
		return "⚠️ The task could not be saved: " + strings.Join(fields, ", ") + "."
	case errors.Is(err, task.ErrInvalidInput):
		return "⚠️ Please describe the task you want to add."
	case errors.Is(err, task.ErrMalformedOutput):
		return "⚠️ I could not understand the generated task. Please rephrase and try again."
	case errors.Is(err, task.ErrGeneration):
		return "⚠️ The AI service is unavailable right now. Please try again later."
	case errors.Is(err, task.ErrNotFound):
		return "⚠️ Task not found."
	default:
		return "⚠️ Something went wrong while processing your request. Please try again."
	}
}
