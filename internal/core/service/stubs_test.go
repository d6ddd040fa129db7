package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
	"github.com/mini-project-manager/tracker/internal/core/statusengine"
)

// ---------------------------------------------------------------------------
// Stores
// ---------------------------------------------------------------------------

var errStoreDown = domain.Processing("store", errors.New("connection refused"))

type stubUserRepo struct {
	users     map[string]*domain.User // by email
	findErr   error
	insertErr error
	inserted  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	clone := *user
	clone.ID = domain.NewID()
	r.users[clone.Email] = &clone
	r.inserted++
	out := clone
	return &out, nil
}

type stubProjectRepo struct {
	byID      map[string]*domain.Project
	findErr   error
	updateErr error
	deleteErr error
	updates   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) seed(ownerID, title string) *domain.Project {
	p := &domain.Project{ID: domain.NewID(), Title: title, OwnerID: ownerID}
	r.byID[p.ID] = p
	return p
}

func (r *stubProjectRepo) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	clone := *p
	clone.ID = domain.NewID()
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) FindMany(_ context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.byID {
		if p.OwnerID == filter.OwnerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) UpdateByID(_ context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	p.UpdatedAt = patch.UpdatedAt
	r.updates++
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

type stubTaskRepo struct {
	byID      map[string]*domain.Task
	findErr   error
	updateErr error
	countErr  error
	inserts   int
	updates   int
	lastSort  ports.TaskSort
	lastQuery ports.TaskFilter

	// afterCount and afterInsert run once the matching call has done its
	// work, to interleave a concurrent writer.
	afterCount  func()
	afterInsert func()
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) seed(projectID, title string, status domain.TaskStatus) *domain.Task {
	t := &domain.Task{ID: domain.NewID(), Title: title, Status: status, ProjectID: projectID}
	r.byID[t.ID] = t
	return t
}

func (r *stubTaskRepo) Insert(_ context.Context, t *domain.Task) (*domain.Task, error) {
	clone := *t
	clone.ID = domain.NewID()
	r.byID[clone.ID] = &clone
	r.inserts++
	out := clone
	if r.afterInsert != nil {
		r.afterInsert()
	}
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) FindMany(_ context.Context, filter ports.TaskFilter, sort ports.TaskSort) ([]*domain.Task, error) {
	r.lastQuery, r.lastSort = filter, sort
	var out []*domain.Task
	for _, t := range r.byID {
		if t.ProjectID != filter.ProjectID ||
			!statusengine.MatchesStatus(t, filter.Status) ||
			!statusengine.MatchesDueWindow(t, filter.DueFrom, filter.DueTo) {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) UpdateByID(_ context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.byID[id]
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
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		d := *patch.DueDate
		t.DueDate = &d
	}
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	t.UpdatedAt = patch.UpdatedAt
	r.updates++
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubTaskRepo) CountByProject(_ context.Context, projectID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, t := range r.byID {
		if t.ProjectID == projectID {
			n++
		}
	}
	if r.afterCount != nil {
		r.afterCount()
	}
	return n, nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	var n int64
	for id, t := range r.byID {
		if t.ProjectID == projectID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.TaskEvent
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.TaskEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.inserted = append(r.inserted, &clone)
	return nil
}

func (r *stubEventRepo) FindByTask(_ context.Context, taskID string) ([]*domain.TaskEvent, error) {
	var out []*domain.TaskEvent
	for _, e := range r.inserted {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, ownerID, kind, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[ownerID+":"+kind+":"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, ownerID, kind, key, id string) error {
	s.keys[ownerID+":"+kind+":"+key] = id
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.TaskEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// ---------------------------------------------------------------------------
// Security
// ---------------------------------------------------------------------------

// fakeHasher stores "hashed:" + plaintext and counts verifications.
type fakeHasher struct {
	hashErr   error
	verifyErr error
	verifies  int
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) Verify(plaintext, hashed string) (bool, error) {
	h.verifies++
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hashed == "hashed:"+plaintext, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(c domain.TokenClaims) (string, error) {
	return "token-for-" + c.SubjectID, nil
}

func (fakeTokens) Verify(token string) (*domain.TokenClaims, error) {
	sub, ok := strings.CutPrefix(token, "token-for-")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{SubjectID: sub}, nil
}

func (fakeTokens) ExtractFromHeader(h string) (string, bool) {
	t, ok := strings.CutPrefix(h, "Bearer ")
	return t, ok && t != ""
}

func ptr[T any](v T) *T { return &v }
