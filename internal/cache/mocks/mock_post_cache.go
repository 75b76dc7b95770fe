package mocks

import (
	"context"

	"postapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPostListCache struct {
	mock.Mock
}

func (m *MockPostListCache) Get(ctx context.Context, ownerID int64) ([]model.Post, bool) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.Post), args.Bool(1)
}

func (m *MockPostListCache) Set(ctx context.Context, ownerID int64, posts []model.Post) {
	m.Called(ctx, ownerID, posts)
}

func (m *MockPostListCache) Invalidate(ctx context.Context, ownerID int64) {
	m.Called(ctx, ownerID)
}
