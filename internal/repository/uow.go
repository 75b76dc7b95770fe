package repository

import (
	"context"
	"errors"
)

// ErrNestedUnitOfWork is returned when a unit of work is entered while
// another one is already open on the same request context.
var ErrNestedUnitOfWork = errors.New("unit of work already open")

// UnitOfWork bounds one atomic transaction per business operation.
//
// Do begins a transaction, builds repositories bound to it, and runs fn.
// If fn returns nil the transaction commits; otherwise it rolls back and
// fn's error is returned untouched. Nothing written through the supplied
// Repositories becomes durable unless the whole body succeeds.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}

type txScopeKey struct{}

// EnterScope marks ctx as being inside a unit of work. It fails with
// ErrNestedUnitOfWork if the context already carries the mark; nesting
// would silently break the commit-or-rollback guarantee.
func EnterScope(ctx context.Context) (context.Context, error) {
	if ctx.Value(txScopeKey{}) != nil {
		return nil, ErrNestedUnitOfWork
	}
	return context.WithValue(ctx, txScopeKey{}, struct{}{}), nil
}
