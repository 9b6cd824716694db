package domain

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("forbidden")
	// ErrOwnerMissing means the owner reference did not resolve to a user when
	// the project was written, e.g. the token subject was deleted.
	ErrOwnerMissing = errors.New("project owner does not exist")
)

const DefaultProjectStatus = "todo"

type Project struct {
	ID          string
	UserID      string // owner, immutable after creation
	Title       string
	Description string
	TechStack   string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthorizeOwner permits access to p only for its owner. The owner is read
// from the stored record, never from client input.
func AuthorizeOwner(actorID string, p *Project) error {
	if p == nil || actorID == "" || p.UserID != actorID {
		return ErrForbidden
	}
	return nil
}
