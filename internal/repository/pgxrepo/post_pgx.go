package pgxrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"postapi/internal/model"
	"postapi/internal/repository"
)

// PostPgx is the native pgx implementation of repository.PostRepository.
type PostPgx struct {
	db DBTX
}

// NewPostPgx creates a new PostPgx repository.
func NewPostPgx(db DBTX) *PostPgx {
	return &PostPgx{db: db}
}

var _ repository.PostRepository = (*PostPgx)(nil)

func (r *PostPgx) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		INSERT INTO posts (owner_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, body, created_at
	`
	row := r.db.QueryRow(ctx, q, p.OwnerID, p.Title, p.Body)
	var out model.Post
	if err := row.Scan(
		&out.ID,
		&out.OwnerID,
		&out.Title,
		&out.Body,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostPgx) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	const q = `
		SELECT id, owner_id, title, body, created_at
		FROM posts
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, q, id)
	var p model.Post
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Body,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostPgx) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	const q = `
		SELECT id, owner_id, title, body, created_at
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Title,
			&p.Body,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostPgx) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
