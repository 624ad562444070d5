package mocks

import (
	"context"

	"bffmvp/internal/model"
	"bffmvp/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRouteService struct {
	mock.Mock
}

func (m *MockRouteService) List(ctx context.Context) ([]model.RouteConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RouteConfig), args.Error(1)
}

func (m *MockRouteService) Register(ctx context.Context, route model.RouteConfig) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteService) Match(ctx context.Context, method, path string) (*model.RouteConfig, bool, error) {
	args := m.Called(ctx, method, path)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.RouteConfig), args.Bool(1), args.Error(2)
}

type MockRequestLogService struct {
	mock.Mock
}

func (m *MockRequestLogService) Record(ctx context.Context, method, path string, status int) error {
	args := m.Called(ctx, method, path, status)
	return args.Error(0)
}

func (m *MockRequestLogService) List(ctx context.Context) ([]model.RequestLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RequestLog), args.Error(1)
}

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Export(ctx context.Context) (*service.SnapshotResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SnapshotResult), args.Error(1)
}

var (
	_ service.RouteService      = (*MockRouteService)(nil)
	_ service.RequestLogService = (*MockRequestLogService)(nil)
	_ service.SnapshotService   = (*MockSnapshotService)(nil)
)
