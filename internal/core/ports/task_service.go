package ports

import (
	"context"
	"time"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. Empty Status
// defaults to todo.
type CreateTaskInput struct {
	ProjectID      string
	Title          string
	Description    string
	DueDate        *time.Time
	Status         string
	IdempotencyKey string
}

// UpdateTaskInput lists the fields to change. Nil means unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *string
}

// ListTasksInput carries the raw list query. Status "" or "all" disables the
// status filter; DueDate is a calendar date (YYYY-MM-DD or RFC 3339).
type ListTasksInput struct {
	Status    string
	DueDate   string
	SortBy    string
	SortOrder string
}

// TaskResult is returned by CreateTask.
type TaskResult struct {
	Task           *domain.Task
	AlreadyExisted bool
}

// TaskService defines the task use cases. Every operation resolves the
// task's parent project and re-checks its ownership first.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, input CreateTaskInput) (*TaskResult, error)
	ListTasks(ctx context.Context, ownerID, projectID string, input ListTasksInput) ([]*domain.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, ownerID, taskID, status string) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	TaskHistory(ctx context.Context, ownerID, taskID string) ([]*domain.TaskEvent, error)
}
