package postgres

import (
	"context"
	"database/sql"
	"errors"

	"postapi/internal/model"
	"postapi/internal/repository"
)

// PostPostgres is the database/sql implementation of repository.PostRepository.
// It uses parameterized queries and contains no business logic.
type PostPostgres struct {
	db DBTX
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db DBTX) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

// Create inserts a new post row and returns the stored record.
func (r *PostPostgres) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		INSERT INTO posts (owner_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, body, created_at
	`
	row := r.db.QueryRowContext(ctx, q, p.OwnerID, p.Title, p.Body)
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

// FindByID fetches a single post by id, regardless of owner.
func (r *PostPostgres) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	const q = `
		SELECT id, owner_id, title, body, created_at
		FROM posts
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Post
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Body,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns the owner's posts in creation order.
func (r *PostPostgres) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	const q = `
		SELECT id, owner_id, title, body, created_at
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
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

// Delete removes a post by id. Zero rows affected means the post was
// already gone and yields ErrNotFound.
func (r *PostPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = $1`
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
