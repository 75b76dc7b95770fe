package mocks

import (
	"context"

	"postapi/internal/repository"
)

// FakeUnitOfWork runs the body immediately against the supplied
// repositories, without any transaction machinery. Err short-circuits Do to
// simulate a transaction that cannot begin. Calls counts entries into Do.
type FakeUnitOfWork struct {
	Repos repository.Repositories
	Err   error
	Calls int
}

func (f *FakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repositories) error) error {
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	ctx, err := repository.EnterScope(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, f.Repos)
}
