package pgxrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postapi/internal/model"
	"postapi/internal/repository"
)

var postCols = []string{"id", "owner_id", "title", "body", "created_at"}

func TestPostPgx_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(int64(7), "hello", "world").
		WillReturnRows(pgxmock.NewRows(postCols).AddRow(int64(42), int64(7), "hello", "world", now))

	repo := NewPostPgx(mock)
	p, err := repo.Create(context.Background(), &model.Post{OwnerID: 7, Title: "hello", Body: "world"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, int64(7), p.OwnerID)
	assert.Equal(t, "hello", p.Title)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPgx_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC()
		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(postCols).AddRow(int64(1), int64(7), "t", "b", now))

		repo := NewPostPgx(mock)
		p, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts").
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostPgx(mock)
		_, err = repo.FindByID(context.Background(), 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("driver error passes through", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		connErr := errors.New("conn closed")
		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts").
			WithArgs(int64(1)).
			WillReturnError(connErr)

		repo := NewPostPgx(mock)
		_, err = repo.FindByID(context.Background(), 1)
		assert.ErrorIs(t, err, connErr)
	})
}

func TestPostPgx_ListByOwner(t *testing.T) {
	t.Run("returns rows in creation order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		t1 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		t2 := t1.Add(time.Minute)
		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts WHERE owner_id").
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(postCols).
				AddRow(int64(1), int64(7), "first", "a", t1).
				AddRow(int64(2), int64(7), "second", "b", t2))

		repo := NewPostPgx(mock)
		posts, err := repo.ListByOwner(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "first", posts[0].Title)
		assert.Equal(t, "second", posts[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no posts is an empty slice, not nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts WHERE owner_id").
			WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows(postCols))

		repo := NewPostPgx(mock)
		posts, err := repo.ListByOwner(context.Background(), 8)

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("row error surfaces", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rowErr := errors.New("conn reset mid-stream")
		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts WHERE owner_id").
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(postCols).
				AddRow(int64(1), int64(7), "t", "b", time.Now().UTC()).
				RowError(0, rowErr))

		repo := NewPostPgx(mock)
		_, err = repo.ListByOwner(context.Background(), 7)
		assert.Error(t, err)
	})

	t.Run("query error passes through", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		queryErr := errors.New("conn closed")
		mock.ExpectQuery("SELECT id, owner_id, title, body, created_at FROM posts WHERE owner_id").
			WithArgs(int64(7)).
			WillReturnError(queryErr)

		repo := NewPostPgx(mock)
		_, err = repo.ListByOwner(context.Background(), 7)
		assert.ErrorIs(t, err, queryErr)
	})
}

func TestPostPgx_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM posts").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewPostPgx(mock)
		assert.NoError(t, repo.Delete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM posts").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostPgx(mock)
		assert.ErrorIs(t, repo.Delete(context.Background(), 1), repository.ErrNotFound)
	})

	t.Run("exec error passes through", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		execErr := errors.New("conn closed")
		mock.ExpectExec("DELETE FROM posts").
			WithArgs(int64(1)).
			WillReturnError(execErr)

		repo := NewPostPgx(mock)
		assert.ErrorIs(t, repo.Delete(context.Background(), 1), execErr)
	})
}

func TestUserPgx_CreateUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "x").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewUserPgx(mock)
	_, err = repo.Create(context.Background(), &model.User{Handle: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrHandleTaken)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}
