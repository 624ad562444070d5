package service

import (
	"context"
	"time"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
)

// DefaultRequestLogLimit is the number of entries kept when no limit is configured.
const DefaultRequestLogLimit = 1000

// RequestLogService records and lists requests answered by dynamic routes.
type RequestLogService interface {
	Record(ctx context.Context, method, path string, status int) error
	List(ctx context.Context) ([]model.RequestLog, error)
}

type requestLogService struct {
	repo  repository.RequestLogRepository
	limit int
	now   func() time.Time
}

// NewRequestLogService constructs a RequestLogService retaining at most limit entries.
func NewRequestLogService(repo repository.RequestLogRepository, limit int) RequestLogService {
	if limit <= 0 {
		limit = DefaultRequestLogLimit
	}
	return &requestLogService{repo: repo, limit: limit, now: time.Now}
}

func (s *requestLogService) Record(ctx context.Context, method, path string, status int) error {
	return s.repo.Append(ctx, model.RequestLog{
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Method:    method,
		Path:      path,
		Status:    status,
	}, s.limit)
}

func (s *requestLogService) List(ctx context.Context) ([]model.RequestLog, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.RequestLog{}
	}
	return logs, nil
}
