package pgxrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"postapi/internal/repository"
)

// TxBeginner is the subset of the pgx pool API the unit of work needs.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork implements repository.UnitOfWork on a native pgx pool.
type UnitOfWork struct {
	db TxBeginner
}

// NewUnitOfWork creates a unit of work over a shared pgx pool.
func NewUnitOfWork(db TxBeginner) *UnitOfWork {
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

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	r := repository.Repositories{
		Users: NewUserPgx(tx),
		Posts: NewPostPgx(tx),
	}

	if err := fn(ctx, r); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
