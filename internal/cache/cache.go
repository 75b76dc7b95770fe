package cache

import (
	"context"
	"fmt"

	"postapi/internal/model"
)

// PostListCache is a read-through cache for per-owner post listings.
//
// The cache is an optimization, never a correctness dependency: every
// implementation absorbs backend failures (logging them) and reports them
// as a miss, so callers fall back to the database and a request never fails
// because the cache did.
type PostListCache interface {
	// Get returns the cached listing for an owner and whether it was a hit.
	Get(ctx context.Context, ownerID int64) ([]model.Post, bool)

	// Set stores the listing for an owner with the configured TTL.
	Set(ctx context.Context, ownerID int64, posts []model.Post)

	// Invalidate removes the owner's cached listing. It is called
	// synchronously on every write to the owner's posts; removal (rather
	// than rewrite) keeps a rolled-back store write from ever leaving a
	// wrong value behind.
	Invalidate(ctx context.Context, ownerID int64)
}

// ownerKey builds the cache key for one owner's full post listing.
// No pagination is modeled, so the key has no query-shaping components.
func ownerKey(ownerID int64) string {
	return fmt.Sprintf("posts:owner:%d", ownerID)
}

// Noop is a PostListCache for deployments without a cache backend.
// Every Get is a miss; Set and Invalidate do nothing.
type Noop struct{}

var _ PostListCache = Noop{}

func (Noop) Get(ctx context.Context, ownerID int64) ([]model.Post, bool) { return nil, false }
func (Noop) Set(ctx context.Context, ownerID int64, posts []model.Post)  {}
func (Noop) Invalidate(ctx context.Context, ownerID int64)               {}
