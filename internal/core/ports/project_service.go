package ports

import (
	"context"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project.
type CreateProjectInput struct {
	Title          string
	Description    string
	IdempotencyKey string
}

// UpdateProjectInput lists the fields to change. Nil means unchanged.
type UpdateProjectInput struct {
	Title       *string
	Description *string
}

// ProjectResult is returned by CreateProject.
type ProjectResult struct {
	Project *domain.Project
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// ProjectService defines the ownership-scoped project use cases. ownerID is
// always the authenticated caller.
type ProjectService interface {
	CreateProject(ctx context.Context, ownerID string, input CreateProjectInput) (*ProjectResult, error)
	ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error)
	GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, ownerID, projectID string, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, ownerID, projectID string) error
}
