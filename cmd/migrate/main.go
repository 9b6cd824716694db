// migrate applies pending migrations to the configured store and exits.
// Run: go run ./cmd/migrate
package main

import (
	"context"
	"log"
	"time"

	"github.com/ErlanBelekov/project-tracker/config"
	"github.com/ErlanBelekov/project-tracker/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := infrastructure.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store.Close()

	log.Printf("migrations applied (%s)", cfg.StoreDriver)
}
