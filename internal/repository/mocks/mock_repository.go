package mocks

import (
	"context"

	"bffmvp/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, route model.RouteConfig) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) List(ctx context.Context) ([]model.RouteConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RouteConfig), args.Error(1)
}

type MockRequestLogRepository struct {
	mock.Mock
}

func (m *MockRequestLogRepository) Append(ctx context.Context, entry model.RequestLog, limit int) error {
	args := m.Called(ctx, entry, limit)
	return args.Error(0)
}

func (m *MockRequestLogRepository) List(ctx context.Context) ([]model.RequestLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RequestLog), args.Error(1)
}
