package mocks

import (
	"context"

	"postapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, handle, password string) (*model.User, string, error) {
	args := m.Called(ctx, handle, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, handle, password string) (string, error) {
	args := m.Called(ctx, handle, password)
	return args.String(0), args.Error(1)
}
