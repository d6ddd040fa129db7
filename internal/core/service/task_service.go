package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
	"github.com/mini-project-manager/tracker/internal/core/statusengine"
)

type TaskService struct {
	tasks    ports.TaskRepository
	events   ports.TaskEventRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityPublisher
	guard    ownership
	loc      *time.Location
	log      zerolog.Logger
	now      func() time.Time
}

// TaskServiceDeps groups the collaborators of TaskService. Idempotency and
// Activity are optional.
type TaskServiceDeps struct {
	Projects    ports.ProjectRepository
	Tasks       ports.TaskRepository
	Events      ports.TaskEventRepository
	Idempotency ports.IdempotencyStore
	Activity    ports.ActivityPublisher
	// Location is the reference timezone of due-date day windows. Nil means UTC.
	Location *time.Location
}

func NewTaskService(deps TaskServiceDeps, log zerolog.Logger) *TaskService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	activity := deps.Activity
	if activity == nil {
		activity = noopPublisher{}
	}
	return &TaskService{
		tasks:    deps.Tasks,
		events:   deps.Events,
		idem:     deps.Idempotency,
		activity: activity,
		guard:    ownership{projects: deps.Projects, tasks: deps.Tasks, log: log},
		loc:      loc,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask stores a task in a project owned by ownerID. Status defaults to
// todo. Nothing is written unless the project check passes.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*ports.TaskResult, error) {
	title, err := domain.NormalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	status := domain.StatusTodo
	if strings.TrimSpace(input.Status) != "" {
		if status, err = domain.ParseTaskStatus(strings.TrimSpace(input.Status)); err != nil {
			return nil, err
		}
	}
	if input.ProjectID == "" {
		return nil, domain.Invalid("projectId", "is required")
	}
	input.ProjectID = canonicalID(input.ProjectID)

	if _, err := s.guard.project(ctx, ownerID, input.ProjectID, "projectId"); err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, ownerID, input.ProjectID, input.IdempotencyKey); existing != nil {
		return &ports.TaskResult{Task: existing, AlreadyExisted: true}, nil
	}

	now := s.now()
	created, err := s.tasks.Insert(ctx, &domain.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", input.ProjectID).Msg("failed to create task")
		return nil, err
	}

	// The project may have been deleted since the check above; its sweep can
	// already be done, so the new task would be orphaned.
	if _, err := s.guard.project(ctx, ownerID, input.ProjectID, "projectId"); isNotFound(err) {
		if _, derr := s.tasks.DeleteByID(ctx, created.ID); derr != nil {
			s.log.Error().Err(derr).Str("task_id", created.ID).Msg("failed to remove task of deleted project")
		}
		return nil, domain.ErrProjectNotFound
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, ownerID, ports.KindTask, input.IdempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Str("task_id", created.ID).Msg("failed to remember idempotency key")
		}
	}

	s.publish(ctx, domain.TaskEvent{
		TaskID:    created.ID,
		ProjectID: created.ProjectID,
		ActorID:   ownerID,
		Type:      domain.TaskCreated,
		ToStatus:  created.Status,
	})
	s.log.Info().Str("task_id", created.ID).Str("project_id", created.ProjectID).Msg("task created")
	return &ports.TaskResult{Task: created}, nil
}

// replay returns the task an earlier create with key produced. A key reused
// for another project does not match and a new task is created.
func (s *TaskService) replay(ctx context.Context, ownerID, projectID, key string) *domain.Task {
	if key == "" || s.idem == nil {
		return nil
	}
	id, found, err := s.idem.Lookup(ctx, ownerID, ports.KindTask, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	t, err := s.GetTask(ctx, ownerID, id)
	if err != nil {
		s.log.Debug().Err(err).Str("task_id", id).Msg("remembered task unavailable")
		return nil
	}
	if t.ProjectID != projectID {
		s.log.Debug().Str("task_id", id).Str("project_id", projectID).Msg("idempotency key reused for another project")
		return nil
	}
	s.log.Info().Str("idempotency_key", key).Str("task_id", id).Msg("idempotent replay")
	return t
}

// ListTasks returns the tasks of a project owned by ownerID, filtered by
// status and due-date day and sorted per the list contract.
func (s *TaskService) ListTasks(ctx context.Context, ownerID, projectID string, input ports.ListTasksInput) ([]*domain.Task, error) {
	projectID = canonicalID(projectID)
	status, err := statusengine.ParseStatusFilter(input.Status)
	if err != nil {
		return nil, err
	}
	order, err := statusengine.ParseSort(input.SortBy, input.SortOrder)
	if err != nil {
		return nil, err
	}
	filter := ports.TaskFilter{ProjectID: projectID, Status: status}
	if strings.TrimSpace(input.DueDate) != "" {
		day, err := statusengine.ParseDueDate(input.DueDate, s.loc)
		if err != nil {
			return nil, err
		}
		from, to := statusengine.DayWindow(day, s.loc)
		filter.DueFrom, filter.DueTo = &from, &to
	}

	if _, err := s.guard.project(ctx, ownerID, projectID, "projectId"); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindMany(ctx, filter, order)
	if err != nil {
		return nil, err
	}
	statusengine.Sort(tasks, order)
	return tasks, nil
}

// GetTask fails with domain.ErrTaskNotFound or domain.ErrTaskForbidden.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	t, _, err := s.guard.task(ctx, ownerID, canonicalID(taskID))
	return t, err
}

// UpdateTask applies input in a single write. A change of project is checked
// against the destination project first; if that check fails nothing is
// written.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	taskID = canonicalID(taskID)
	if input.ProjectID != nil {
		dest := canonicalID(*input.ProjectID)
		input.ProjectID = &dest
	}
	patch := ports.TaskPatch{
		Description:  input.Description,
		DueDate:      input.DueDate,
		ClearDueDate: input.ClearDueDate,
	}
	if input.Title != nil {
		title, err := domain.NormalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if input.Status != nil {
		status, err := domain.ParseTaskStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}

	current, _, err := s.guard.task(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil && *input.ProjectID != current.ProjectID {
		if _, err := s.guard.project(ctx, ownerID, *input.ProjectID, "projectId"); err != nil {
			return nil, err
		}
		patch.ProjectID = input.ProjectID
	}

	patch.UpdatedAt = s.now()
	updated, err := s.tasks.UpdateByID(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, changeEvent(ownerID, current, updated))
	s.log.Info().Str("task_id", taskID).Msg("task updated")
	return updated, nil
}

// UpdateTaskStatus overwrites the status. Any status may follow any other;
// only the value is checked, and before any store access.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, ownerID, taskID, status string) (*domain.Task, error) {
	taskID = canonicalID(taskID)
	next, err := domain.ParseTaskStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}

	current, _, err := s.guard.task(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	updated, err := s.tasks.UpdateByID(ctx, taskID, ports.TaskPatch{Status: &next, UpdatedAt: s.now()})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.TaskEvent{
		TaskID:     updated.ID,
		ProjectID:  updated.ProjectID,
		ActorID:    ownerID,
		Type:       domain.TaskStatusChanged,
		FromStatus: current.Status,
		ToStatus:   updated.Status,
	})
	s.log.Info().Str("task_id", taskID).Str("status", string(next)).Msg("task status updated")
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	taskID = canonicalID(taskID)
	current, _, err := s.guard.task(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	deleted, err := s.tasks.DeleteByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}

	s.publish(ctx, domain.TaskEvent{
		TaskID:     current.ID,
		ProjectID:  current.ProjectID,
		ActorID:    ownerID,
		Type:       domain.TaskDeleted,
		FromStatus: current.Status,
	})
	s.log.Info().Str("task_id", taskID).Msg("task deleted")
	return nil
}

// TaskHistory returns the recorded events of a task, oldest first.
func (s *TaskService) TaskHistory(ctx context.Context, ownerID, taskID string) ([]*domain.TaskEvent, error) {
	taskID = canonicalID(taskID)
	if _, _, err := s.guard.task(ctx, ownerID, taskID); err != nil {
		return nil, err
	}
	return s.events.FindByTask(ctx, taskID)
}

// changeEvent describes an update. A move takes precedence over a status
// change, which takes precedence over a plain edit.
func changeEvent(actorID string, before, after *domain.Task) domain.TaskEvent {
	e := domain.TaskEvent{
		TaskID:     after.ID,
		ProjectID:  after.ProjectID,
		ActorID:    actorID,
		Type:       domain.TaskUpdated,
		FromStatus: before.Status,
		ToStatus:   after.Status,
	}
	switch {
	case before.ProjectID != after.ProjectID:
		e.Type = domain.TaskMoved
		e.FromProjectID = before.ProjectID
		e.ToProjectID = after.ProjectID
	case before.Status != after.Status:
		e.Type = domain.TaskStatusChanged
	}
	return e
}

// publish stamps e with the time of the change and hands it over.
func (s *TaskService) publish(ctx context.Context, e domain.TaskEvent) {
	e.OccurredAt = s.now()
	s.activity.Publish(ctx, e)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.TaskEvent) {}

var _ ports.TaskService = (*TaskService)(nil)
