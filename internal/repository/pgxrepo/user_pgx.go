package pgxrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"postapi/internal/model"
	"postapi/internal/repository"
)

// UserPgx is the native pgx implementation of repository.UserRepository.
type UserPgx struct {
	db DBTX
}

// NewUserPgx creates a new UserPgx repository.
func NewUserPgx(db DBTX) *UserPgx {
	return &UserPgx{db: db}
}

var _ repository.UserRepository = (*UserPgx)(nil)

func (r *UserPgx) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (handle, password_hash)
		VALUES ($1, $2)
		RETURNING id, handle, password_hash, created_at, updated_at
	`
	row := r.db.QueryRow(ctx, q, u.Handle, u.PasswordHash)
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

func (r *UserPgx) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, handle, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *UserPgx) FindByHandle(ctx context.Context, handle string) (*model.User, error) {
	const q = `
		SELECT id, handle, password_hash, created_at, updated_at
		FROM users
		WHERE handle = $1
	`
	return scanUser(r.db.QueryRow(ctx, q, handle))
}

func (r *UserPgx) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Handle,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
