package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mini-project-manager/tracker/internal/api/metrics"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// HeaderIdempotencyKey makes a create request safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// ProjectHandler handles HTTP requests for project operations. Every route is
// mounted behind the Auth middleware.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createProjectRequest  true   "Project"
// @Success      201              {object}  projectEnvelope
// @Success      200              {object}  projectEnvelope  "Replay of an earlier create"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.CreateProject(c.Request().Context(), userID, ports.CreateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("project", strconv.FormatBool(res.AlreadyExisted)).Inc()
	status, msg := http.StatusCreated, "project created"
	if res.AlreadyExisted {
		status, msg = http.StatusOK, "project already created"
	}
	return c.JSON(status, projectEnvelope{Success: true, Message: msg, Project: toProjectResponse(res.Project)})
}

// List handles GET /api/projects.
//
// @Summary      List the caller's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  projectListEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectListEnvelope{Success: true, Count: len(projects), Projects: toProjectList(projects)})
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	project, err := h.service.GetProject(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectEnvelope{Success: true, Project: toProjectResponse(project)})
}

// Update handles PUT /api/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.service.UpdateProject(c.Request().Context(), userID, c.Param("id"), ports.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectEnvelope{Success: true, Message: "project updated", Project: toProjectResponse(project)})
}

// Delete handles DELETE /api/projects/:id. Projects that still hold tasks
// are refused with 409.
//
// @Summary      Delete an empty project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProject(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "project deleted"})
}
