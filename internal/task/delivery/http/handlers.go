package http

import (
	"github.com/gin-gonic/gin"

	"ai-task-manager/pkg/response"
)

// List godoc
// @Summary     List tasks
// @Description Returns all tasks ordered by due date (undated last), with optional filters.
// @Tags        Tasks
// @Produce     json
// @Param       status   query string false "Filter by status (pending, in_progress, completed)"
// @Param       due_from query string false "Inclusive lower bound of the due date (YYYY-MM-DD or RFC3339)"
// @Param       due_to   query string false "Exclusive upper bound of the due date (YYYY-MM-DD or RFC3339)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.List(ctx, input)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Create godoc
// @Summary     Create a task
// @Description Creates a task from explicit fields. Status defaults to pending.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Task data"
// @Success     201 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Create(ctx, input)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newTaskResp(output.Task, h.now()))
}

// CreateAI godoc
// @Summary     Create a task from free text
// @Description Extracts a task from a natural-language instruction using the configured LLM providers.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createAIReq true "Free-text instruction"
// @Success     201 {object} createAIResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Generation service failure or malformed output"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/ai [POST]
func (h *handler) CreateAI(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateAIReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ExtractAndCreate(ctx, input)
	if err != nil {
		h.l.Warnf(ctx, "task.http.CreateAI: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newCreateAIResp(output))
}

// Calendar godoc
// @Summary     Calendar view
// @Description Groups tasks by local due day. Days without tasks are omitted.
// @Tags        Tasks
// @Produce     json
// @Param       from query string false "First day (YYYY-MM-DD), default first day of the current month"
// @Param       to   query string false "Last day, inclusive (YYYY-MM-DD), default last day of the current month"
// @Success     200 {object} calendarResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/calendar [GET]
func (h *handler) Calendar(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCalendarReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Calendar(ctx, input)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCalendarResp(output))
}

// Detail godoc
// @Summary     Get a task
// @Tags        Tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTaskResp(output.Task, h.now()))
}

// Update godoc
// @Summary     Replace a task
// @Description Replaces every mutable field. Omitted optional fields are cleared.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path int       true "Task ID"
// @Param       body body createReq true "Task data"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Update(ctx, input)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTaskResp(output.Task, h.now()))
}

// Delete godoc
// @Summary     Delete a task
// @Description Permanently removes a task and returns it.
// @Tags        Tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Delete(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTaskResp(output.Task, h.now()))
}
