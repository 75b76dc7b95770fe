package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"postapi/internal/repository"
)

// UnitOfWork implements repository.UnitOfWork on database/sql.
// Each Do call owns exactly one transaction; the repositories it hands out
// are bound to that transaction and must not outlive the body.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a unit of work over a shared connection pool.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// Do runs fn inside a transaction. A nil return commits; any error rolls
// back and is returned to the caller unchanged. Re-entry from within an
// open unit of work fails with repository.ErrNestedUnitOfWork.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repositories) error) error {
	ctx, err := repository.EnterScope(ctx)
	if err != nil {
		return err
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	r := repository.Repositories{
		Users: NewUserPostgres(tx),
		Posts: NewPostPostgres(tx),
	}

	if err := fn(ctx, r); err != nil {
		// Rollback failure is unreachable by the caller anyway; the body's
		// error is the one that matters and propagates untouched.
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
