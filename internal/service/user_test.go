package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"postapi/internal/auth"
	"postapi/internal/model"
	"postapi/internal/repository"
	repoMocks "postapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*repoMocks.MockUserRepository, *auth.Manager, UserService) {
	t.Helper()
	mUsers := new(repoMocks.MockUserRepository)
	uow := &repoMocks.FakeUnitOfWork{Repos: repository.Repositories{Users: mUsers, Posts: new(repoMocks.MockPostRepository)}}
	mgr, err := auth.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	return mUsers, mgr, NewUserService(uow, mgr)
}

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and issues a usable token", func(t *testing.T) {
		mUsers, mgr, svc := newUserFixture(t)

		mUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// The password never reaches the store in the clear.
			return u.Handle == "alice" && u.PasswordHash != "" && u.PasswordHash != "s3cret"
		})).Return(&model.User{ID: 5, Handle: "alice"}, nil)

		user, token, err := svc.Signup(ctx, "alice", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, "alice", user.Handle)

		userID, err := mgr.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), userID)
	})

	t.Run("duplicate handle", func(t *testing.T) {
		mUsers, _, svc := newUserFixture(t)

		mUsers.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrHandleTaken)

		_, _, err := svc.Signup(ctx, "alice", "s3cret")
		assert.ErrorIs(t, err, ErrHandleTaken)
	})

	t.Run("validation", func(t *testing.T) {
		_, _, svc := newUserFixture(t)

		_, _, err := svc.Signup(ctx, "", "s3cret")
		assert.ErrorIs(t, err, ErrHandleRequired)

		_, _, err = svc.Signup(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mUsers, _, svc := newUserFixture(t)

		storeErr := errors.New("insert failed")
		mUsers.On("Create", mock.Anything, mock.Anything).Return(nil, storeErr)

		_, _, err := svc.Signup(ctx, "alice", "s3cret")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	stored := &model.User{ID: 5, Handle: "alice", PasswordHash: hash}

	t.Run("valid credentials issue a token for the right user", func(t *testing.T) {
		mUsers, mgr, svc := newUserFixture(t)

		mUsers.On("FindByHandle", mock.Anything, "alice").Return(stored, nil)

		token, err := svc.Login(ctx, "alice", "s3cret")
		require.NoError(t, err)

		userID, err := mgr.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mUsers, _, svc := newUserFixture(t)

		mUsers.On("FindByHandle", mock.Anything, "alice").Return(stored, nil)

		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown handle reads the same as a wrong password", func(t *testing.T) {
		mUsers, _, svc := newUserFixture(t)

		mUsers.On("FindByHandle", mock.Anything, "nobody").Return(nil, repository.ErrNotFound)

		_, err := svc.Login(ctx, "nobody", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials are rejected without hitting the store", func(t *testing.T) {
		mUsers, _, svc := newUserFixture(t)

		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		mUsers.AssertNotCalled(t, "FindByHandle", mock.Anything, mock.Anything)
	})
}
