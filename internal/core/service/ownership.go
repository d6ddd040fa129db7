package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// ownership resolves resources against current stored state and checks that
// the caller owns them. Nothing is cached: every call reads the store.
type ownership struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	log      zerolog.Logger
}

// project returns the project when ownerID owns it. field names the input
// that carried projectID, for validation messages.
func (o ownership) project(ctx context.Context, ownerID, projectID, field string) (*domain.Project, error) {
	if !domain.IsValidID(projectID) {
		return nil, domain.Invalid(field, "is not a valid id")
	}
	p, err := o.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(ownerID) {
		o.log.Warn().Str("user_id", ownerID).Str("project_id", projectID).Msg("project access denied")
		return nil, domain.ErrProjectForbidden
	}
	return p, nil
}

// task returns the task and its parent project when ownerID owns the parent.
// A task whose parent no longer resolves is reported as not found.
func (o ownership) task(ctx context.Context, ownerID, taskID string) (*domain.Task, *domain.Project, error) {
	if !domain.IsValidID(taskID) {
		return nil, nil, domain.Invalid("id", "is not a valid id")
	}
	t, err := o.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	p, err := o.projects.FindByID(ctx, t.ProjectID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, domain.ErrTaskNotFound
		}
		return nil, nil, err
	}
	if !p.OwnedBy(ownerID) {
		o.log.Warn().Str("user_id", ownerID).Str("task_id", taskID).Msg("task access denied")
		return nil, nil, domain.ErrTaskForbidden
	}
	return t, p, nil
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

// canonicalID lowercases a well-formed id so every store sees the stored
// form. Malformed ids are returned unchanged for the guard to reject.
func canonicalID(id string) string {
	if c, ok := domain.CanonicalID(id); ok {
		return c
	}
	return id
}
