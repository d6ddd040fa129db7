package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mini-project-manager/tracker/internal/api/metrics"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every route is
// mounted behind the Auth middleware.
type TaskHandler struct {
	service ports.TaskService
	loc     *time.Location
}

// NewTaskHandler reads date-only due dates in loc. Nil means UTC.
func NewTaskHandler(service ports.TaskService, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskHandler{service: service, loc: loc}
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createTaskRequest  true   "Task; status defaults to todo"
// @Success      201              {object}  taskEnvelope
// @Success      200              {object}  taskEnvelope  "Replay of an earlier create"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	due, err := parseDueDate(req.DueDate, h.loc)
	if err != nil {
		return err
	}

	res, err := h.service.CreateTask(c.Request().Context(), userID, ports.CreateTaskInput{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        due,
		Status:         req.Status,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("task", strconv.FormatBool(res.AlreadyExisted)).Inc()
	status, msg := http.StatusCreated, "task created"
	if res.AlreadyExisted {
		status, msg = http.StatusOK, "task already created"
	}
	return c.JSON(status, taskEnvelope{Success: true, Message: msg, Task: toTaskResponse(res.Task)})
}

// ListByProject handles GET /api/projects/:id/tasks.
//
// @Summary      List the tasks of a project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "Project id"
// @Param        status     query     string  false  "todo, in-progress, done or all"
// @Param        dueDate    query     string  false  "Calendar day (YYYY-MM-DD)"
// @Param        sortBy     query     string  false  "createdAt, updatedAt, dueDate, title or status"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  taskListEnvelope
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), userID, c.Param("id"), ports.ListTasksInput{
		Status:    c.QueryParam("status"),
		DueDate:   c.QueryParam("dueDate"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListEnvelope{Success: true, Count: len(tasks), Tasks: toTaskList(tasks)})
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.GetTask(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskEnvelope{Success: true, Task: toTaskResponse(task)})
}

// Update handles PUT /api/tasks/:id. Moving a task requires owning the
// destination project.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change; dueDate null clears it"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
	}
	switch {
	case req.DueDate.Null, req.DueDate.Set && req.DueDate.Value == "":
		input.ClearDueDate = true
	case req.DueDate.Set:
		if input.DueDate, err = parseDueDate(&req.DueDate.Value, h.loc); err != nil {
			return err
		}
	}

	task, err := h.service.UpdateTask(c.Request().Context(), userID, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskEnvelope{Success: true, Message: "task updated", Task: toTaskResponse(task)})
}

// UpdateStatus handles PATCH /api/tasks/:id/status.
//
// @Summary      Set a task's status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Task id"
// @Param        body  body      updateStatusRequest  true  "todo, in-progress or done"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateTaskStatus(c.Request().Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.TaskStatusUpdatesTotal.WithLabelValues(string(task.Status)).Inc()
	return c.JSON(http.StatusOK, taskEnvelope{Success: true, Message: "task status updated", Task: toTaskResponse(task)})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "task deleted"})
}

// History handles GET /api/tasks/:id/history.
//
// @Summary      Activity history of a task, oldest first
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskHistoryEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id}/history [get]
func (h *TaskHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	events, err := h.service.TaskHistory(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskHistoryEnvelope{Success: true, Count: len(events), Events: toTaskEventList(events)})
}
