package postgres

import (
	"context"
	"database/sql"
	"errors"

	"postapi/internal/model"
	"postapi/internal/repository"
)

// UserPostgres is the database/sql implementation of repository.UserRepository.
// It uses parameterized queries and contains no business logic.
type UserPostgres struct {
	db DBTX
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db DBTX) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (handle, password_hash)
		VALUES ($1, $2)
		RETURNING id, handle, password_hash, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, u.Handle, u.PasswordHash)
	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.Handle,
		&out.PasswordHash,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrHandleTaken
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, handle, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByHandle fetches a single user by unique handle.
func (r *UserPostgres) FindByHandle(ctx context.Context, handle string) (*model.User, error) {
	const q = `
		SELECT id, handle, password_hash, created_at, updated_at
		FROM users
		WHERE handle = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, handle))
}

// Delete removes a user by id. The posts FK cascades, so the user's posts
// go with the row inside the same transaction.
func (r *UserPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserPostgres) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Handle,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
