// Package memory keeps the route registry and request log in process memory.
// Both stores are safe for concurrent use.
package memory

import (
	"context"
	"sync"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
)

type RouteStore struct {
	mu     sync.RWMutex
	routes []model.RouteConfig
}

func NewRouteStore() *RouteStore {
	return &RouteStore{routes: []model.RouteConfig{}}
}

var _ repository.RouteRepository = (*RouteStore)(nil)

func (s *RouteStore) Create(_ context.Context, route model.RouteConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route)
	return nil
}

func (s *RouteStore) List(_ context.Context) ([]model.RouteConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RouteConfig, len(s.routes))
	copy(out, s.routes)
	return out, nil
}

type RequestLogStore struct {
	mu   sync.RWMutex
	logs []model.RequestLog
}

func NewRequestLogStore() *RequestLogStore {
	return &RequestLogStore{logs: []model.RequestLog{}}
}

var _ repository.RequestLogRepository = (*RequestLogStore)(nil)

func (s *RequestLogStore) Append(_ context.Context, entry model.RequestLog, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if limit > 0 && len(s.logs) > limit {
		excess := len(s.logs) - limit
		s.logs = append([]model.RequestLog(nil), s.logs[excess:]...)
	}
	return nil
}

func (s *RequestLogStore) List(_ context.Context) ([]model.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RequestLog, len(s.logs))
	copy(out, s.logs)
	return out, nil
}
