package mocks

import (
	"context"

	"postapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, ownerID int64, title, body string) (*model.Post, error) {
	args := m.Called(ctx, ownerID, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, ownerID int64) ([]model.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, ownerID, postID int64) error {
	args := m.Called(ctx, ownerID, postID)
	return args.Error(0)
}
