package ports

import (
	"context"
	"time"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// ProjectFilter selects projects. OwnerID is always set by the service layer.
type ProjectFilter struct {
	OwnerID string
}

// ProjectPatch lists the mutable project fields. Nil means unchanged.
type ProjectPatch struct {
	Title       *string
	Description *string
	UpdatedAt   time.Time
}

// ProjectRepository is the resource store boundary for projects.
type ProjectRepository interface {
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// FindByID returns domain.ErrProjectNotFound when id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindMany(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	// UpdateByID applies patch as a single-document write and returns the
	// updated project, or domain.ErrProjectNotFound.
	UpdateByID(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
