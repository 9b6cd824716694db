package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/repository"
)

// ProjectUsecase runs every single-record operation as fetch, then
// domain.AuthorizeOwner, then act.
type ProjectUsecase struct {
	repo repository.ProjectRepository
}

func NewProjectUsecase(repo repository.ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{repo: repo}
}

type CreateProjectInput struct {
	UserID      string
	Title       string
	Description string
	TechStack   string
	Status      string
}

// UpdateProjectInput carries a partial update: nil fields keep their stored value.
type UpdateProjectInput struct {
	UserID      string
	ID          string
	Title       *string
	Description *string
	TechStack   *string
	Status      *string
}

func (u *ProjectUsecase) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects, err := u.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (u *ProjectUsecase) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if input.Status == "" {
		input.Status = domain.DefaultProjectStatus
	}

	created, err := u.repo.Create(ctx, &domain.Project{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		TechStack:   input.TechStack,
		Status:      input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (u *ProjectUsecase) GetProject(ctx context.Context, id, userID string) (*domain.Project, error) {
	return u.fetchOwned(ctx, id, userID)
}

func (u *ProjectUsecase) UpdateProject(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	p, err := u.fetchOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.TechStack != nil {
		p.TechStack = *input.TechStack
	}
	if input.Status != nil {
		p.Status = *input.Status
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

func (u *ProjectUsecase) DeleteProject(ctx context.Context, id, userID string) error {
	p, err := u.fetchOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, p.ID, p.UserID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (u *ProjectUsecase) fetchOwned(ctx context.Context, id, userID string) (*domain.Project, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := domain.AuthorizeOwner(userID, p); err != nil {
		return nil, err
	}
	return p, nil
}
