package service

import (
	"context"
	"errors"

	"postapi/internal/auth"
	"postapi/internal/model"
	"postapi/internal/repository"
)

var (
	ErrHandleRequired     = errors.New("handle is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrHandleTaken        = errors.New("handle already registered")
	ErrInvalidCredentials = errors.New("invalid handle or password")
)

// UserService defines the signup and login use cases. Tokens are issued by
// the auth manager; this service only decides when issuance is allowed.
type UserService interface {
	// Signup registers a new user and returns it together with a fresh
	// access token. ErrHandleTaken if the handle is already registered.
	Signup(ctx context.Context, handle, password string) (*model.User, string, error)

	// Login verifies credentials and returns an access token.
	// ErrInvalidCredentials on an unknown handle or a wrong password;
	// callers cannot tell which.
	Login(ctx context.Context, handle, password string) (string, error)
}

type userService struct {
	uow    repository.UnitOfWork
	tokens *auth.Manager
}

// NewUserService constructs a new UserService.
func NewUserService(uow repository.UnitOfWork, tokens *auth.Manager) UserService {
	return &userService{uow: uow, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, handle, password string) (*model.User, string, error) {
	if handle == "" {
		return nil, "", ErrHandleRequired
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	var created *model.User
	err = s.uow.Do(ctx, func(ctx context.Context, r repository.Repositories) error {
		u, err := r.Users.Create(ctx, &model.User{Handle: handle, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, repository.ErrHandleTaken) {
				return ErrHandleTaken
			}
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Handle)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

func (s *userService) Login(ctx context.Context, handle, password string) (string, error) {
	if handle == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	var user *model.User
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repositories) error {
		u, err := r.Users.FindByHandle(ctx, handle)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Handle)
}
