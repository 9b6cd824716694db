package repository

import (
	"context"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
)

// ProjectRepository is the project half of the credential store.
// GetByID is deliberately unscoped: callers fetch the record and run
// domain.AuthorizeOwner against its stored owner before acting on it.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)

	// ListByOwner returns the owner's projects newest first. The owner filter
	// is part of the query, so other users' rows are never loaded.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Project, error)

	// Update and Delete match on (id, user_id). Zero affected rows yields
	// domain.ErrProjectNotFound.
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id, userID string) error

	// CountByStatus feeds the per-status gauge.
	CountByStatus(ctx context.Context) (map[string]int, error)
}
