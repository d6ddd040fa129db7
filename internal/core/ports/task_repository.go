package ports

import (
	"context"
	"time"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// TaskFilter selects tasks of one project.
type TaskFilter struct {
	ProjectID string
	Status    *domain.TaskStatus // nil = any status
	DueFrom   *time.Time         // inclusive
	DueTo     *time.Time         // inclusive
}

// TaskSortField names a sortable task attribute.
type TaskSortField string

const (
	SortByCreatedAt TaskSortField = "createdAt"
	SortByUpdatedAt TaskSortField = "updatedAt"
	SortByDueDate   TaskSortField = "dueDate"
	SortByTitle     TaskSortField = "title"
	SortByStatus    TaskSortField = "status"
)

// TaskSort orders a task listing.
type TaskSort struct {
	Field      TaskSortField
	Descending bool
}

// TaskPatch lists the mutable task fields. Nil means unchanged; ClearDueDate
// removes the due date.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *string
	UpdatedAt    time.Time
}

// TaskRepository is the resource store boundary for tasks.
type TaskRepository interface {
	Insert(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindMany(ctx context.Context, filter TaskFilter, sort TaskSort) ([]*domain.Task, error)
	// UpdateByID applies patch as a single-document write and returns the
	// updated task, or domain.ErrTaskNotFound.
	UpdateByID(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
	// DeleteByProject removes every task of projectID and reports how many.
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

// TaskEventRepository persists task activity history.
type TaskEventRepository interface {
	Insert(ctx context.Context, e *domain.TaskEvent) error
	// FindByTask returns the task's events oldest first.
	FindByTask(ctx context.Context, taskID string) ([]*domain.TaskEvent, error)
}
