// Package memory is a process-local implementation of the identity, resource
// and activity stores. It backs STORE_DRIVER=memory and the end-to-end tests.
// Records are copied on the way in and out, so callers never share state
// with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
	"github.com/mini-project-manager/tracker/internal/core/statusengine"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	projects map[string]domain.Project
	tasks    map[string]domain.Task
	events   []domain.TaskEvent
	idem     map[string]string
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		projects: make(map[string]domain.Project),
		tasks:    make(map[string]domain.Task),
		idem:     make(map[string]string),
	}
}

// Users returns the store's UserRepository view.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Projects returns the store's ProjectRepository view.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// Tasks returns the store's TaskRepository view.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

// Events returns the store's TaskEventRepository view.
func (s *Store) Events() *TaskEventRepository { return &TaskEventRepository{s: s} }

// Idempotency returns the store's IdempotencyStore view. Keys never expire.
func (s *Store) Idempotency() *IdempotencyStore { return &IdempotencyStore{s: s} }

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepository struct{ s *Store }

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	u := *user
	if u.ID == "" {
		u.ID = domain.NewID()
	}
	r.s.users[u.ID] = u
	return &u, nil
}

// ── Projects ──────────────────────────────────────────────────────────────────

type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	if cp.ID == "" {
		cp.ID = domain.NewID()
	}
	r.s.projects[cp.ID] = cp
	return &cp, nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

// FindMany returns the owner's projects, oldest first.
func (r *ProjectRepository) FindMany(_ context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Project, 0)
	for _, p := range r.s.projects {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectRepository) UpdateByID(_ context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if !patch.UpdatedAt.IsZero() {
		p.UpdatedAt = patch.UpdatedAt
	}
	r.s.projects[id] = p
	return &p, nil
}

func (r *ProjectRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return false, nil
	}
	delete(r.s.projects, id)
	return true, nil
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

type TaskRepository struct{ s *Store }

func (r *TaskRepository) Insert(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := copyTask(*t)
	if cp.ID == "" {
		cp.ID = domain.NewID()
	}
	r.s.tasks[cp.ID] = cp
	out := copyTask(cp)
	return &out, nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := copyTask(t)
	return &out, nil
}

// FindMany applies the filter and the sort order.
func (r *TaskRepository) FindMany(_ context.Context, filter ports.TaskFilter, order ports.TaskSort) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Task, 0)
	for _, t := range r.s.tasks {
		if t.ProjectID != filter.ProjectID {
			continue
		}
		if !statusengine.MatchesStatus(&t, filter.Status) || !statusengine.MatchesDueWindow(&t, filter.DueFrom, filter.DueTo) {
			continue
		}
		cp := copyTask(t)
		out = append(out, &cp)
	}
	statusengine.Sort(out, order)
	return out, nil
}

func (r *TaskRepository) UpdateByID(_ context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	switch {
	case patch.ClearDueDate:
		t.DueDate = nil
	case patch.DueDate != nil:
		d := *patch.DueDate
		t.DueDate = &d
	}
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	if !patch.UpdatedAt.IsZero() {
		t.UpdatedAt = patch.UpdatedAt
	}
	r.s.tasks[id] = t
	out := copyTask(t)
	return &out, nil
}

func (r *TaskRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return false, nil
	}
	delete(r.s.tasks, id)
	return true, nil
}

func (r *TaskRepository) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, t := range r.s.tasks {
		if t.ProjectID == projectID {
			delete(r.s.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *TaskRepository) CountByProject(_ context.Context, projectID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func copyTask(t domain.Task) domain.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// ── Task events ───────────────────────────────────────────────────────────────

type TaskEventRepository struct{ s *Store }

func (r *TaskEventRepository) Insert(_ context.Context, e *domain.TaskEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	if cp.ID == "" {
		cp.ID = domain.NewID()
	}
	r.s.events = append(r.s.events, cp)
	return nil
}

// FindByTask returns the task's events in insertion order.
func (r *TaskEventRepository) FindByTask(_ context.Context, taskID string) ([]*domain.TaskEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.TaskEvent, 0)
	for _, e := range r.s.events {
		if e.TaskID == taskID {
			cp := e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Idempotency keys ──────────────────────────────────────────────────────────

type IdempotencyStore struct{ s *Store }

func (r *IdempotencyStore) Lookup(_ context.Context, ownerID, kind, key string) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.idem[ownerID+":"+kind+":"+key]
	return id, ok, nil
}

// Remember keeps the first resource recorded for a key.
func (r *IdempotencyStore) Remember(_ context.Context, ownerID, kind, key, resourceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := ownerID + ":" + kind + ":" + key
	if _, ok := r.s.idem[k]; !ok {
		r.s.idem[k] = resourceID
	}
	return nil
}

var (
	_ ports.IdempotencyStore    = (*IdempotencyStore)(nil)
	_ ports.UserRepository      = (*UserRepository)(nil)
	_ ports.ProjectRepository   = (*ProjectRepository)(nil)
	_ ports.TaskRepository      = (*TaskRepository)(nil)
	_ ports.TaskEventRepository = (*TaskEventRepository)(nil)
)
