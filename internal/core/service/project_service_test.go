package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

const (
	ana = "64f000000000000000000001"
	ben = "64f000000000000000000002"
)

func newProjectSvc(projects *stubProjectRepo, tasks *stubTaskRepo, idem ports.IdempotencyStore) *ProjectService {
	return NewProjectService(projects, tasks, idem, zerolog.Nop())
}

func TestProjectService_Create(t *testing.T) {
	svc := newProjectSvc(newStubProjectRepo(), newStubTaskRepo(), nil)

	res, err := svc.CreateProject(context.Background(), ana, ports.CreateProjectInput{Title: "  P1  ", Description: "first"})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if res.AlreadyExisted {
		t.Fatalf("fresh create reported as replay")
	}
	p := res.Project
	if p.ID == "" || p.Title != "P1" || p.OwnerID != ana || p.Description != "first" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("timestamps not set: %+v", p)
	}
}

func TestProjectService_Create_EmptyTitle(t *testing.T) {
	projects := newStubProjectRepo()
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateProject(context.Background(), ana, ports.CreateProjectInput{Title: title})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != "title" {
			t.Errorf("title %q: expected title validation error, got %v", title, err)
		}
	}
	if len(projects.byID) != 0 {
		t.Fatalf("nothing must be stored on validation failure")
	}
}

func TestProjectService_Create_IdempotentReplay(t *testing.T) {
	projects := newStubProjectRepo()
	idem := newStubIdempotency()
	svc := newProjectSvc(projects, newStubTaskRepo(), idem)
	ctx := context.Background()
	in := ports.CreateProjectInput{Title: "P1", IdempotencyKey: "k-1"}

	first, err := svc.CreateProject(ctx, ana, in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateProject(ctx, ana, in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if !second.AlreadyExisted || second.Project.ID != first.Project.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Project.ID, second)
	}
	if len(projects.byID) != 1 {
		t.Fatalf("expected one stored project, got %d", len(projects.byID))
	}

	// Keys are scoped by owner.
	other, err := svc.CreateProject(ctx, ben, in)
	if err != nil {
		t.Fatalf("create for ben: %v", err)
	}
	if other.AlreadyExisted || other.Project.OwnerID != ben {
		t.Fatalf("ben must get a separate project, got %+v", other)
	}
}

func TestProjectService_Create_ReplayOfDeletedProjectCreatesAgain(t *testing.T) {
	projects := newStubProjectRepo()
	svc := newProjectSvc(projects, newStubTaskRepo(), newStubIdempotency())
	ctx := context.Background()
	in := ports.CreateProjectInput{Title: "P1", IdempotencyKey: "k-1"}

	first, _ := svc.CreateProject(ctx, ana, in)
	if err := svc.DeleteProject(ctx, ana, first.Project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	again, err := svc.CreateProject(ctx, ana, in)
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if again.AlreadyExisted || again.Project.ID == first.Project.ID {
		t.Fatalf("expected a new project, got %+v", again)
	}
}

func TestProjectService_Create_IdempotencyStoreDownStillCreates(t *testing.T) {
	idem := newStubIdempotency()
	idem.lookupErr = errors.New("redis: connection refused")
	svc := newProjectSvc(newStubProjectRepo(), newStubTaskRepo(), idem)

	res, err := svc.CreateProject(context.Background(), ana, ports.CreateProjectInput{Title: "P1", IdempotencyKey: "k"})
	if err != nil || res.AlreadyExisted {
		t.Fatalf("expected fresh create, got %+v, %v", res, err)
	}
}

func TestProjectService_ListOnlyOwned(t *testing.T) {
	projects := newStubProjectRepo()
	projects.seed(ana, "A1")
	projects.seed(ana, "A2")
	projects.seed(ben, "B1")
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	list, err := svc.ListProjects(context.Background(), ana)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(list))
	}
	for _, p := range list {
		if p.OwnerID != ana {
			t.Fatalf("leaked project %+v", p)
		}
	}
}

func TestProjectService_Get_NotFoundVsForbidden(t *testing.T) {
	projects := newStubProjectRepo()
	mine := projects.seed(ana, "A1")
	theirs := projects.seed(ben, "B1")
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)
	ctx := context.Background()

	if p, err := svc.GetProject(ctx, ana, mine.ID); err != nil || p.ID != mine.ID {
		t.Fatalf("own project: %+v, %v", p, err)
	}
	if _, err := svc.GetProject(ctx, ana, theirs.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.GetProject(ctx, ana, domain.NewID()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetProject(ctx, ana, "not-an-id"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectService_Update(t *testing.T) {
	projects := newStubProjectRepo()
	p := projects.seed(ana, "old")
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	got, err := svc.UpdateProject(context.Background(), ana, p.ID, ports.UpdateProjectInput{Title: ptr(" new "), Description: ptr("d")})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if got.Title != "new" || got.Description != "d" || got.OwnerID != ana {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestProjectService_Update_CrossOwner(t *testing.T) {
	projects := newStubProjectRepo()
	p := projects.seed(ben, "B1")
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	_, err := svc.UpdateProject(context.Background(), ana, p.ID, ports.UpdateProjectInput{Title: ptr("mine now")})
	if !errors.Is(err, domain.ErrProjectForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if projects.updates != 0 || projects.byID[p.ID].Title != "B1" {
		t.Fatalf("project must be untouched")
	}
}

func TestProjectService_Update_EmptyTitle(t *testing.T) {
	projects := newStubProjectRepo()
	p := projects.seed(ana, "A1")
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	_, err := svc.UpdateProject(context.Background(), ana, p.ID, ports.UpdateProjectInput{Title: ptr("  ")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if projects.updates != 0 {
		t.Fatalf("expected no write")
	}
}

func TestProjectService_Delete(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	empty := projects.seed(ana, "empty")
	busy := projects.seed(ana, "busy")
	tasks.seed(busy.ID, "T1", domain.StatusTodo)
	theirs := projects.seed(ben, "B1")
	svc := newProjectSvc(projects, tasks, nil)
	ctx := context.Background()

	if err := svc.DeleteProject(ctx, ana, empty.ID); err != nil {
		t.Fatalf("delete empty project: %v", err)
	}
	if _, ok := projects.byID[empty.ID]; ok {
		t.Fatalf("project still stored")
	}

	if err := svc.DeleteProject(ctx, ana, busy.ID); !errors.Is(err, domain.ErrProjectHasTasks) {
		t.Fatalf("expected ErrProjectHasTasks, got %v", err)
	}
	if err := svc.DeleteProject(ctx, ana, theirs.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, ok := projects.byID[theirs.ID]; !ok {
		t.Fatalf("ben's project must survive")
	}
	if err := svc.DeleteProject(ctx, ana, empty.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestProjectService_StoreFailure(t *testing.T) {
	projects := newStubProjectRepo()
	p := projects.seed(ana, "A1")
	projects.findErr = errStoreDown
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)

	_, err := svc.GetProject(context.Background(), ana, p.ID)
	if !errors.Is(err, domain.ErrProcessing) {
		t.Fatalf("expected processing error, got %v", err)
	}
}

func TestProjectService_UppercaseIDResolvesStoredProject(t *testing.T) {
	projects := newStubProjectRepo()
	projects.byID["64f0000000000000000000ab"] = &domain.Project{ID: "64f0000000000000000000ab", Title: "P1", OwnerID: ana}
	svc := newProjectSvc(projects, newStubTaskRepo(), nil)
	ctx := context.Background()

	got, err := svc.GetProject(ctx, ana, "64F0000000000000000000AB")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.ID != "64f0000000000000000000ab" {
		t.Fatalf("unexpected id %q", got.ID)
	}
	if _, err := svc.UpdateProject(ctx, ana, "64F0000000000000000000AB", ports.UpdateProjectInput{Title: ptr("P2")}); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if err := svc.DeleteProject(ctx, ana, "64F0000000000000000000AB"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if len(projects.byID) != 0 {
		t.Fatalf("project not deleted")
	}
}

func TestProjectService_Delete_RemovesTaskCreatedDuringDeletion(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	p := projects.seed(ana, "P1")
	tasks.afterCount = func() { tasks.seed(p.ID, "late", domain.StatusTodo) }
	svc := newProjectSvc(projects, tasks, nil)

	if err := svc.DeleteProject(context.Background(), ana, p.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, ok := projects.byID[p.ID]; ok {
		t.Fatalf("project still stored")
	}
	if len(tasks.byID) != 0 {
		t.Fatalf("task of deleted project left behind: %d", len(tasks.byID))
	}
}
