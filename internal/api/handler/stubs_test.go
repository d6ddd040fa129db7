package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mini-project-manager/tracker/internal/api/middleware"
	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubProjectService struct {
	createFn func(ctx context.Context, ownerID string, input ports.CreateProjectInput) (*ports.ProjectResult, error)
	listFn   func(ctx context.Context, ownerID string) ([]*domain.Project, error)
	getFn    func(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	updateFn func(ctx context.Context, ownerID, projectID string, input ports.UpdateProjectInput) (*domain.Project, error)
	deleteFn func(ctx context.Context, ownerID, projectID string) error
}

func (s *stubProjectService) CreateProject(ctx context.Context, ownerID string, input ports.CreateProjectInput) (*ports.ProjectResult, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubProjectService) ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubProjectService) GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	return s.getFn(ctx, ownerID, projectID)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, ownerID, projectID string, input ports.UpdateProjectInput) (*domain.Project, error) {
	return s.updateFn(ctx, ownerID, projectID, input)
}

func (s *stubProjectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	return s.deleteFn(ctx, ownerID, projectID)
}

type stubTaskService struct {
	createFn  func(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*ports.TaskResult, error)
	listFn    func(ctx context.Context, ownerID, projectID string, input ports.ListTasksInput) ([]*domain.Task, error)
	getFn     func(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	updateFn  func(ctx context.Context, ownerID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error)
	statusFn  func(ctx context.Context, ownerID, taskID, status string) (*domain.Task, error)
	deleteFn  func(ctx context.Context, ownerID, taskID string) error
	historyFn func(ctx context.Context, ownerID, taskID string) ([]*domain.TaskEvent, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*ports.TaskResult, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubTaskService) ListTasks(ctx context.Context, ownerID, projectID string, input ports.ListTasksInput) ([]*domain.Task, error) {
	return s.listFn(ctx, ownerID, projectID, input)
}

func (s *stubTaskService) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.getFn(ctx, ownerID, taskID)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, ownerID, taskID, input)
}

func (s *stubTaskService) UpdateTaskStatus(ctx context.Context, ownerID, taskID, status string) (*domain.Task, error) {
	return s.statusFn(ctx, ownerID, taskID, status)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return s.deleteFn(ctx, ownerID, taskID)
}

func (s *stubTaskService) TaskHistory(ctx context.Context, ownerID, taskID string) ([]*domain.TaskEvent, error) {
	return s.historyFn(ctx, ownerID, taskID)
}

// newContext builds an echo context with the shared validator. A non-empty
// userID plays the role of the Auth middleware.
func newContext(method, target string, body io.Reader, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.UserIDKey, userID)
	}
	return c, rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
