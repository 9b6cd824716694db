// seed creates a demo user with a handful of projects in the configured store.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ErlanBelekov/project-tracker/config"
	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/infrastructure"
	"github.com/ErlanBelekov/project-tracker/internal/password"
)

const (
	seedEmail    = "demo@tracker.local"
	seedPassword = "demo-password"
)

type projectSpec struct {
	title       string
	description string
	techStack   string
	status      string
}

var projects = []projectSpec{
	{"Portfolio site", "Personal landing page with blog", "Go, templ, htmx", "done"},
	{"Expense tracker", "Monthly budget dashboard", "Go, Postgres", "in-progress"},
	{"CLI todo", "Terminal task list synced over HTTP", "Go, cobra", "todo"},
	{"Recipe API", "REST API for shared recipes", "Go, gin, SQLite", "todo"},
	{"Chess engine", "Minimax with alpha-beta pruning", "Rust", "in-progress"},
	{"Home dashboard", "Sensor readings from the garage", "Go, Prometheus, Grafana", "todo"},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store, err := infrastructure.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer store.Close()

	user, err := store.Users.FindByEmail(ctx, seedEmail)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		hash, err := password.NewHasher(cfg.BcryptCost).Hash(seedPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if user, err = store.Users.Create(ctx, seedEmail, hash); err != nil {
			log.Fatalf("create user: %v", err)
		}
	case err != nil:
		log.Fatalf("find user: %v", err)
	}

	existing, err := store.Projects.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("list projects: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Title] = true
	}

	created := 0
	for _, spec := range projects {
		if have[spec.title] {
			continue
		}
		_, err := store.Projects.Create(ctx, &domain.Project{
			UserID:      user.ID,
			Title:       spec.title,
			Description: spec.description,
			TechStack:   spec.techStack,
			Status:      spec.status,
		})
		if err != nil {
			log.Fatalf("create project %q: %v", spec.title, err)
		}
		created++
	}

	fmt.Printf("seeded %s (password %q): %d new projects, %d total\n",
		seedEmail, seedPassword, created, len(existing)+created)
}
