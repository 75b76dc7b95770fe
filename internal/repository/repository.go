// Package repository contains data access layer abstractions.
// Two interchangeable implementations live in subpackages: postgres
// (database/sql via the pgx stdlib driver) and pgxrepo (native pgx pool).
// Business logic depends only on the interfaces defined here.
package repository

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	// Both implementations translate their driver's no-rows sentinel into
	// this error so callers never touch driver types.
	ErrNotFound = errors.New("entity not found")

	// ErrHandleTaken is returned when a user create hits the unique
	// constraint on the handle column.
	ErrHandleTaken = errors.New("handle already taken")
)

// Repositories bundles the transaction-bound repository handles a unit of
// work hands to its body. Every handle shares one underlying transaction.
type Repositories struct {
	Users UserRepository
	Posts PostRepository
}
