package http

import (
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Duration    *int    `json:"duration"`
	Status      string  `json:"status"`
}

type createAIReq struct {
	Text string `json:"text" binding:"required"`
}

type listReq struct {
	Status  string `form:"status"`
	DueFrom string `form:"due_from"`
	DueTo   string `form:"due_to"`
}

type calendarReq struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type updateReq struct {
	ID int64 `json:"-"`
	createReq
}

// --- Response DTOs ---

type taskResp struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	DueDate     *response.DateTime `json:"dueDate"`
	Duration    *int               `json:"duration"`
	Status      model.TaskStatus   `json:"status"`
	Overdue     bool               `json:"overdue"`
	CreatedAt   response.DateTime  `json:"createdAt"`
	UpdatedAt   response.DateTime  `json:"updatedAt"`
}

func (h *handler) newTaskResp(t model.Task, now time.Time) taskResp {
	loc := h.dates.Location()
	resp := taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		Status:      t.Status,
		Overdue:     t.IsOverdue(now),
		CreatedAt:   response.DateTime(t.CreatedAt.In(loc)),
		UpdatedAt:   response.DateTime(t.UpdatedAt.In(loc)),
	}
	if t.DueDate != nil {
		d := response.DateTime(t.DueDate.In(loc))
		resp.DueDate = &d
	}
	return resp
}

func (h *handler) newTaskListResp(tasks []model.Task, now time.Time) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = h.newTaskResp(t, now)
	}
	return out
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	return listResp{
		Tasks: h.newTaskListResp(out.Tasks, h.now()),
		Total: out.Total,
	}
}

type createAIResp struct {
	taskResp
	CalendarLink string `json:"calendarLink,omitempty"`
}

func (h *handler) newCreateAIResp(out task.ExtractOutput) createAIResp {
	return createAIResp{
		taskResp:     h.newTaskResp(out.Task, h.now()),
		CalendarLink: out.CalendarLink,
	}
}

type statusCountsResp struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

type calendarDayResp struct {
	Date   response.Date    `json:"date"`
	Tasks  []taskResp       `json:"tasks"`
	Counts statusCountsResp `json:"counts"`
}

type calendarResp struct {
	Days []calendarDayResp `json:"days"`
}

func (h *handler) newCalendarResp(out task.CalendarOutput) calendarResp {
	now := h.now()
	days := make([]calendarDayResp, len(out.Days))
	for i, d := range out.Days {
		days[i] = calendarDayResp{
			Date:  response.Date(d.Date),
			Tasks: h.newTaskListResp(d.Tasks, now),
			Counts: statusCountsResp{
				Pending:    d.Counts.Pending,
				InProgress: d.Counts.InProgress,
				Completed:  d.Counts.Completed,
			},
		}
	}
	return calendarResp{Days: days}
}
