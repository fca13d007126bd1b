package http

import (
	"context"

	"github.com/tilemaker-app/tilemaker-backend/internal/projects"
)

// Store is the slice of the projects repo the handlers need. Narrowed to an
// interface so unit tests can run against a fake.
type Store interface {
	List(ctx context.Context, userID string) ([]projects.Project, error)
	Upsert(ctx context.Context, userID string, p projects.Project) error
	Delete(ctx context.Context, userID, id string) error
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
