package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	idem     ports.IdempotencyStore
	guard    ownership
	log      zerolog.Logger
	now      func() time.Time
}

// NewProjectService wires the project use cases. idem may be nil, in which
// case Idempotency-Key values are ignored.
func NewProjectService(projects ports.ProjectRepository, tasks ports.TaskRepository, idem ports.IdempotencyStore, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		idem:     idem,
		guard:    ownership{projects: projects, tasks: tasks, log: log},
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject stores a project owned by ownerID. When the idempotency key
// was already used by ownerID, the earlier project is returned instead.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, input ports.CreateProjectInput) (*ports.ProjectResult, error) {
	title, err := domain.NormalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, ownerID, input.IdempotencyKey); existing != nil {
		return &ports.ProjectResult{Project: existing, AlreadyExisted: true}, nil
	}

	now := s.now()
	created, err := s.projects.Insert(ctx, &domain.Project{
		Title:       title,
		Description: input.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create project")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, ownerID, ports.KindProject, input.IdempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Str("project_id", created.ID).Msg("failed to remember idempotency key")
		}
	}

	s.log.Info().Str("project_id", created.ID).Str("user_id", ownerID).Msg("project created")
	return &ports.ProjectResult{Project: created}, nil
}

// replay returns the project an earlier create with key produced, re-read
// through the ownership check. Store failures fall through to a fresh create.
func (s *ProjectService) replay(ctx context.Context, ownerID, key string) *domain.Project {
	if key == "" || s.idem == nil {
		return nil
	}
	id, found, err := s.idem.Lookup(ctx, ownerID, ports.KindProject, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	p, err := s.GetProject(ctx, ownerID, id)
	if err != nil {
		s.log.Debug().Err(err).Str("project_id", id).Msg("remembered project unavailable")
		return nil
	}
	s.log.Info().Str("idempotency_key", key).Str("project_id", id).Msg("idempotent replay")
	return p
}

func (s *ProjectService) ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	return s.projects.FindMany(ctx, ports.ProjectFilter{OwnerID: ownerID})
}

// GetProject fails with domain.ErrProjectNotFound or domain.ErrProjectForbidden.
func (s *ProjectService) GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	return s.guard.project(ctx, ownerID, canonicalID(projectID), "id")
}

func (s *ProjectService) UpdateProject(ctx context.Context, ownerID, projectID string, input ports.UpdateProjectInput) (*domain.Project, error) {
	projectID = canonicalID(projectID)
	patch := ports.ProjectPatch{Description: input.Description}
	if input.Title != nil {
		title, err := domain.NormalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}

	if _, err := s.guard.project(ctx, ownerID, projectID, "id"); err != nil {
		return nil, err
	}

	patch.UpdatedAt = s.now()
	updated, err := s.projects.UpdateByID(ctx, projectID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("project_id", projectID).Msg("project updated")
	return updated, nil
}

// DeleteProject removes an empty project. Projects that still hold tasks fail
// with domain.ErrProjectHasTasks.
func (s *ProjectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	projectID = canonicalID(projectID)
	if _, err := s.guard.project(ctx, ownerID, projectID, "id"); err != nil {
		return err
	}

	n, err := s.tasks.CountByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrProjectHasTasks
	}

	deleted, err := s.projects.DeleteByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrProjectNotFound
	}

	// Tasks created between the count and the delete would be orphaned.
	swept, err := s.tasks.DeleteByProject(ctx, projectID)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("failed to remove tasks of deleted project")
	} else if swept > 0 {
		s.log.Warn().Int64("tasks", swept).Str("project_id", projectID).Msg("removed tasks created during project deletion")
	}
	s.log.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

var _ ports.ProjectService = (*ProjectService)(nil)
