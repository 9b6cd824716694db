package repository

import (
	"context"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
)

type UserRepository interface {
	// Create stores a new user. Returns domain.ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
