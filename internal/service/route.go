package service

import (
	"context"
	"errors"
	"fmt"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
)

// ErrInvalidRoute wraps validation failures for submitted routes.
var ErrInvalidRoute = errors.New("invalid route")

// RouteService defines the use cases around the route registry.
type RouteService interface {
	// List returns registered routes in registration order.
	List(ctx context.Context) ([]model.RouteConfig, error)

	// Register validates and appends a route. Duplicate IDs are accepted.
	Register(ctx context.Context, route model.RouteConfig) error

	// Match returns the first registered route answering method and path.
	Match(ctx context.Context, method, path string) (*model.RouteConfig, bool, error)
}

type routeService struct {
	repo repository.RouteRepository
}

// NewRouteService constructs a new RouteService.
func NewRouteService(repo repository.RouteRepository) RouteService {
	return &routeService{repo: repo}
}

func (s *routeService) List(ctx context.Context) ([]model.RouteConfig, error) {
	routes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []model.RouteConfig{}
	}
	return routes, nil
}

func (s *routeService) Register(ctx context.Context, route model.RouteConfig) error {
	if err := route.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	return s.repo.Create(ctx, route)
}

func (s *routeService) Match(ctx context.Context, method, path string) (*model.RouteConfig, bool, error) {
	routes, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range routes {
		if routes[i].Matches(method, path) {
			return &routes[i], true, nil
		}
	}
	return nil, false, nil
}
