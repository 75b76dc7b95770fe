package repository

import (
	"context"

	"postapi/internal/model"
)

// PostRepository defines data access for posts using SQL queries only.
// No business logic here, strictly persistence operations.
type PostRepository interface {
	// Create inserts a new post and returns the stored record with the
	// server-assigned id and creation timestamp.
	Create(ctx context.Context, p *model.Post) (*model.Post, error)

	// FindByID returns a post by id, or ErrNotFound. The lookup is not
	// owner-scoped; ownership checks belong to the service layer so it can
	// distinguish a missing post from a foreign one.
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// ListByOwner returns the owner's posts in creation order.
	// An owner with no posts yields an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error)

	// Delete removes a post by id. Returns ErrNotFound if no row was
	// deleted, so a second delete of the same id fails.
	Delete(ctx context.Context, id int64) error
}
