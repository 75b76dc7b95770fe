package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"postapi/internal/model"
	"postapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postCols = []string{"id", "owner_id", "title", "body", "created_at"}

func TestPostPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(postCols).
		AddRow(int64(1), int64(7), "first", "hello", now)

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(int64(7), "first", "hello").
		WillReturnRows(rows)

	created, err := repo.Create(ctx, &model.Post{OwnerID: 7, Title: "first", Body: "hello"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(7), created.OwnerID)
	assert.Equal(t, "first", created.Title)
	assert.Equal(t, "hello", created.Body)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(postCols).
			AddRow(int64(2), int64(7), "t", "b", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id =").
			WithArgs(int64(2)).
			WillReturnRows(rows)

		p, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), p.ID)
		assert.Equal(t, int64(7), p.OwnerID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id =").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, 99)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("returns posts in creation order", func(t *testing.T) {
		early := time.Now().Add(-time.Hour)
		late := time.Now()
		rows := sqlmock.NewRows(postCols).
			AddRow(int64(1), int64(7), "first", "a", early).
			AddRow(int64(2), int64(7), "second", "b", late)

		mock.ExpectQuery("SELECT (.+) FROM posts WHERE owner_id = (.+) ORDER BY created_at ASC, id ASC").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		posts, err := repo.ListByOwner(ctx, 7)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "first", posts[0].Title)
		assert.Equal(t, "second", posts[1].Title)
	})

	t.Run("empty slice when owner has no posts", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE owner_id =").
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(postCols))

		posts, err := repo.ListByOwner(ctx, 8)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("deletes existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM posts WHERE id =").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("not found when zero rows affected", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM posts WHERE id =").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 1), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
