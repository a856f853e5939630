package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
)

const dateLayout = "2006-01-02"

// processCreateReq binds the create task request body.
func (h *handler) processCreateReq(c *gin.Context) (task.CreateInput, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.CreateInput{}, badRequest(errInvalidBody, err)
	}

	due, err := h.parseOptionalDueDate(req.DueDate)
	if err != nil {
		return task.CreateInput{}, err
	}

	return task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Duration:    req.Duration,
		Status:      model.TaskStatus(req.Status),
	}, nil
}

// processCreateAIReq binds the natural-language extraction request body.
func (h *handler) processCreateAIReq(c *gin.Context) (task.ExtractInput, error) {
	var req createAIReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.ExtractInput{}, badRequest(errInvalidBody, err)
	}
	return task.ExtractInput{Text: req.Text}, nil
}

// processUpdateReq binds the update body and the :id URI param.
func (h *handler) processUpdateReq(c *gin.Context) (task.UpdateInput, error) {
	id, err := parseID(c)
	if err != nil {
		return task.UpdateInput{}, err
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.UpdateInput{}, badRequest(errInvalidBody, err)
	}
	req.ID = id

	due, err := h.parseOptionalDueDate(req.DueDate)
	if err != nil {
		return task.UpdateInput{}, err
	}

	return task.UpdateInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Duration:    req.Duration,
		Status:      model.TaskStatus(req.Status),
	}, nil
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (task.ListInput, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return task.ListInput{}, badRequest(errInvalidQuery, err)
	}

	input := task.ListInput{Status: model.TaskStatus(strings.TrimSpace(req.Status))}
	if req.DueFrom != "" {
		t, err := h.dates.ParseDueDate(req.DueFrom, h.now())
		if err != nil {
			return task.ListInput{}, badRequest(errInvalidQuery, fmt.Errorf("due_from: %w", err))
		}
		input.DueFrom = &t
	}
	if req.DueTo != "" {
		t, err := h.dates.ParseDueDate(req.DueTo, h.now())
		if err != nil {
			return task.ListInput{}, badRequest(errInvalidQuery, fmt.Errorf("due_to: %w", err))
		}
		input.DueTo = &t
	}
	return input, nil
}

// processCalendarReq binds the calendar range. Both bounds are local dates and
// "to" is inclusive. Without parameters the current month is returned.
func (h *handler) processCalendarReq(c *gin.Context) (task.CalendarInput, error) {
	var req calendarReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return task.CalendarInput{}, badRequest(errInvalidQuery, err)
	}

	loc := h.dates.Location()
	today := h.dates.StartOfDay(h.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	if req.From != "" {
		t, err := time.ParseInLocation(dateLayout, req.From, loc)
		if err != nil {
			return task.CalendarInput{}, badRequest(errInvalidQuery, fmt.Errorf("from: %w", err))
		}
		from = t
	}
	if req.To != "" {
		t, err := time.ParseInLocation(dateLayout, req.To, loc)
		if err != nil {
			return task.CalendarInput{}, badRequest(errInvalidQuery, fmt.Errorf("to: %w", err))
		}
		to = t.AddDate(0, 0, 1)
	}

	return task.CalendarInput{From: from, To: to}, nil
}

func (h *handler) parseOptionalDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := h.dates.ParseDueDate(*raw, h.now())
	if err != nil {
		return nil, h.mapError(task.NewValidationError("dueDate", fmt.Sprintf("unrecognized date %q", *raw)))
	}
	return &t, nil
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
