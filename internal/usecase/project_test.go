package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/usecase"
)

// fakeProjectRepo records mutating calls so tests can assert they never happened.
type fakeProjectRepo struct {
	projects map[string]*domain.Project

	updates []string
	deletes []string
}

func newFakeProjectRepo(ps ...*domain.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: make(map[string]*domain.Project)}
	for _, p := range ps {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	cp := *p
	cp.ID = "p-new"
	r.projects[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByOwner(_ context.Context, userID string) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0)
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.updates = append(r.updates, p.ID)
	cp := *p
	r.projects[p.ID] = &cp
	return &cp, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id, _ string) error {
	r.deletes = append(r.deletes, id)
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) CountByStatus(context.Context) (map[string]int, error) {
	return nil, nil
}

func ownedProject() *domain.Project {
	return &domain.Project{
		ID: "p-1", UserID: "user-a", Title: "T", Description: "D", TechStack: "Go", Status: "todo",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateProject_DefaultsStatus(t *testing.T) {
	repo := newFakeProjectRepo()
	uc := usecase.NewProjectUsecase(repo)

	p, err := uc.CreateProject(context.Background(), usecase.CreateProjectInput{UserID: "user-a", Title: "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != domain.DefaultProjectStatus {
		t.Errorf("status = %q, want %q", p.Status, domain.DefaultProjectStatus)
	}
	if p.UserID != "user-a" {
		t.Errorf("owner = %q, want user-a", p.UserID)
	}
}

func TestGetProject_OtherUser_Forbidden(t *testing.T) {
	uc := usecase.NewProjectUsecase(newFakeProjectRepo(ownedProject()))

	_, err := uc.GetProject(context.Background(), "p-1", "user-b")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
}

func TestGetProject_Missing_NotFound(t *testing.T) {
	uc := usecase.NewProjectUsecase(newFakeProjectRepo())

	_, err := uc.GetProject(context.Background(), "p-404", "user-a")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("want ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateProject_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newFakeProjectRepo(ownedProject())
	uc := usecase.NewProjectUsecase(repo)

	p, err := uc.UpdateProject(context.Background(), usecase.UpdateProjectInput{
		UserID: "user-a", ID: "p-1", Status: strPtr("done"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "done" || p.Title != "T" || p.Description != "D" || p.TechStack != "Go" {
		t.Errorf("got %+v, want only status changed", p)
	}
}

func TestUpdateProject_OtherUser_ForbiddenAndUnchanged(t *testing.T) {
	repo := newFakeProjectRepo(ownedProject())
	uc := usecase.NewProjectUsecase(repo)

	_, err := uc.UpdateProject(context.Background(), usecase.UpdateProjectInput{
		UserID: "user-b", ID: "p-1", Title: strPtr("mine now"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("repo.Update called %d times, want 0", len(repo.updates))
	}
	if repo.projects["p-1"].Title != "T" {
		t.Error("record changed despite forbidden update")
	}
}

func TestDeleteProject_OtherUser_ForbiddenAndKept(t *testing.T) {
	repo := newFakeProjectRepo(ownedProject())
	uc := usecase.NewProjectUsecase(repo)

	err := uc.DeleteProject(context.Background(), "p-1", "user-b")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if len(repo.deletes) != 0 {
		t.Errorf("repo.Delete called %d times, want 0", len(repo.deletes))
	}
	if _, ok := repo.projects["p-1"]; !ok {
		t.Error("record removed despite forbidden delete")
	}
}

func TestDeleteProject_Owner(t *testing.T) {
	repo := newFakeProjectRepo(ownedProject())
	uc := usecase.NewProjectUsecase(repo)

	if err := uc.DeleteProject(context.Background(), "p-1", "user-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.projects["p-1"]; ok {
		t.Error("record still present after delete")
	}
}

func TestListProjects_ScopedToCaller(t *testing.T) {
	other := &domain.Project{ID: "p-2", UserID: "user-b", Title: "B"}
	uc := usecase.NewProjectUsecase(newFakeProjectRepo(ownedProject(), other))

	list, err := uc.ListProjects(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p-1" {
		t.Errorf("list = %+v, want only p-1", list)
	}
}
