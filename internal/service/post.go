package service

import (
	"context"
	"errors"

	"postapi/internal/cache"
	"postapi/internal/model"
	"postapi/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("body is required")
	ErrPostNotFound  = errors.New("post not found")
	ErrForbidden     = errors.New("post belongs to another user")
	ErrOwnerNotFound = errors.New("owner not found")
)

// PostService defines the use cases for handling posts. It is the only
// entry point HTTP handlers may call; each method composes one unit of
// work with the list cache so every operation is atomic and cache-consistent.
type PostService interface {
	// Create inserts a post for the owner and invalidates the owner's
	// cached listing, all inside one transaction scope.
	Create(ctx context.Context, ownerID int64, title, body string) (*model.Post, error)

	// List returns the owner's posts in creation order, served from cache
	// when a fresh entry exists. An owner with no posts gets an empty
	// slice, not an error.
	List(ctx context.Context, ownerID int64) ([]model.Post, error)

	// Delete removes one of the owner's posts. ErrPostNotFound if the post
	// does not exist, ErrForbidden if it belongs to someone else; the
	// ownership check runs inside the transaction.
	Delete(ctx context.Context, ownerID, postID int64) error
}

// postService is a concrete implementation of PostService.
type postService struct {
	uow   repository.UnitOfWork
	cache cache.PostListCache
}

// NewPostService constructs a new PostService.
func NewPostService(uow repository.UnitOfWork, c cache.PostListCache) PostService {
	return &postService{uow: uow, cache: c}
}

func (s *postService) Create(ctx context.Context, ownerID int64, title, body string) (*model.Post, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if body == "" {
		return nil, ErrBodyRequired
	}

	var created *model.Post
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repositories) error {
		// Auth already resolved the caller, but the insert must still land
		// on an existing owner row; the FK would reject it anyway, this
		// just yields a cleaner error.
		if _, err := r.Users.FindByID(ctx, ownerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrOwnerNotFound
			}
			return err
		}

		p, err := r.Posts.Create(ctx, &model.Post{OwnerID: ownerID, Title: title, Body: body})
		if err != nil {
			return err
		}
		created = p

		// Invalidation is a removal, so even if the commit below fails the
		// next read just recomputes from the store.
		s.cache.Invalidate(ctx, ownerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *postService) List(ctx context.Context, ownerID int64) ([]model.Post, error) {
	if posts, ok := s.cache.Get(ctx, ownerID); ok {
		return posts, nil
	}

	var posts []model.Post
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repositories) error {
		var err error
		posts, err = r.Posts.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, ownerID, posts)
	return posts, nil
}

func (s *postService) Delete(ctx context.Context, ownerID, postID int64) error {
	return s.uow.Do(ctx, func(ctx context.Context, r repository.Repositories) error {
		p, err := r.Posts.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if p.OwnerID != ownerID {
			return ErrForbidden
		}

		if err := r.Posts.Delete(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		s.cache.Invalidate(ctx, ownerID)
		return nil
	})
}
