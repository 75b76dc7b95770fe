package repository

import (
	"context"

	"postapi/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// No business logic here, strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user and returns the stored record with the
	// server-assigned id and timestamps. A duplicate handle yields ErrHandleTaken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByHandle returns a user by unique handle, or ErrNotFound.
	FindByHandle(ctx context.Context, handle string) (*model.User, error)

	// Delete removes a user by id; the schema cascades the user's posts.
	// Returns ErrNotFound if no row was deleted.
	Delete(ctx context.Context, id int64) error
}
