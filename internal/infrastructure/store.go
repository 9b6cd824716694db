// Package infrastructure opens the configured store and hands out its
// repositories.
package infrastructure

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/project-tracker/config"
	"github.com/ErlanBelekov/project-tracker/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/project-tracker/internal/infrastructure/sqlite"
	"github.com/ErlanBelekov/project-tracker/internal/repository"
)

// Store is a migrated database behind the repository interfaces.
type Store struct {
	Driver   string
	Users    repository.UserRepository
	Projects repository.ProjectRepository

	ping  func(ctx context.Context) error
	close func()
}

// Open connects to the store named by STORE_DRIVER and applies pending
// migrations before returning.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:   cfg.StoreDriver,
			Users:    postgres.NewUserRepository(pool),
			Projects: postgres.NewProjectRepository(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   cfg.StoreDriver,
			Users:    db.Users(),
			Projects: db.Projects(),
			ping:     db.Ping,
			close:    func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() {
	s.close()
}
