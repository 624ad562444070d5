package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
)

// RoutePostgres is a PostgreSQL implementation of repository.RouteRepository.
// Insertion order is kept through the seq column.
type RoutePostgres struct {
	db *sql.DB
}

// NewRoutePostgres creates a new RoutePostgres repository.
func NewRoutePostgres(db *sql.DB) *RoutePostgres {
	return &RoutePostgres{db: db}
}

var _ repository.RouteRepository = (*RoutePostgres)(nil)

// Create inserts a route row.
func (r *RoutePostgres) Create(ctx context.Context, route model.RouteConfig) error {
	const q = `
		INSERT INTO route_configs (id, path, method, description)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, q,
		int64(route.ID),
		route.Path,
		route.Method,
		nullString(route.Description),
	); err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

// List returns every route ordered by insertion.
func (r *RoutePostgres) List(ctx context.Context) ([]model.RouteConfig, error) {
	const q = `
		SELECT id, path, method, description
		FROM route_configs
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	items := make([]model.RouteConfig, 0)
	for rows.Next() {
		var (
			rc   model.RouteConfig
			id   int64
			desc sql.NullString
		)
		if err := rows.Scan(&id, &rc.Path, &rc.Method, &desc); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		rc.ID = uint64(id)
		if desc.Valid {
			rc.Description = model.StringPtr(desc.String)
		}
		items = append(items, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
