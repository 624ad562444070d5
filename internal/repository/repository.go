package repository

import (
	"context"

	"bffmvp/internal/model"
)

// RouteRepository persists registered route configurations.
// List returns routes in insertion order; duplicates on ID are kept.
type RouteRepository interface {
	// Create appends a route to the registry.
	Create(ctx context.Context, route model.RouteConfig) error

	// List returns every registered route, oldest first. An empty registry yields an empty slice.
	List(ctx context.Context) ([]model.RouteConfig, error)
}

// RequestLogRepository stores the most recent requests answered by dynamic routes.
type RequestLogRepository interface {
	// Append records an entry and evicts the oldest entries beyond limit.
	Append(ctx context.Context, entry model.RequestLog, limit int) error

	// List returns the retained entries, oldest first.
	List(ctx context.Context) ([]model.RequestLog, error)
}
