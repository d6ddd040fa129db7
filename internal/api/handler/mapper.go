package handler

import (
	"time"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/statusengine"
)

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toProjectList(ps []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toTaskResponse(t *domain.Task) taskResponse {
	r := taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		r.DueDate = &d
	}
	return r
}

func toTaskList(ts []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toTaskEventList(es []*domain.TaskEvent) []taskEventResponse {
	out := make([]taskEventResponse, 0, len(es))
	for _, e := range es {
		out = append(out, taskEventResponse{
			ID:            e.ID,
			Type:          string(e.Type),
			ActorID:       e.ActorID,
			ProjectID:     e.ProjectID,
			FromStatus:    string(e.FromStatus),
			ToStatus:      string(e.ToStatus),
			FromProjectID: e.FromProjectID,
			ToProjectID:   e.ToProjectID,
			OccurredAt:    e.OccurredAt.UTC(),
		})
	}
	return out
}

// --- HTTP request → service input ---

// parseDueDate accepts a YYYY-MM-DD date (midnight in loc) or an RFC 3339
// timestamp. Empty means no due date.
func parseDueDate(raw *string, loc *time.Location) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := statusengine.ParseDueDate(*raw, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
