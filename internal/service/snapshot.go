package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
	"bffmvp/internal/storage"
)

// ErrSnapshotsDisabled is returned when no object store is configured.
var ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")

// SnapshotResult describes an exported route table.
type SnapshotResult struct {
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Routes int    `json:"routes"`
	URL    string `json:"url,omitempty"`
}

// SnapshotService archives the route registry to object storage.
type SnapshotService interface {
	Export(ctx context.Context) (*SnapshotResult, error)
}

type snapshotService struct {
	store  storage.Storage
	repo   repository.RouteRepository
	expiry time.Duration
	now    func() time.Time
}

// NewSnapshotService constructs a SnapshotService. A nil store disables exports.
func NewSnapshotService(store storage.Storage, repo repository.RouteRepository) SnapshotService {
	return &snapshotService{store: store, repo: repo, expiry: 15 * time.Minute, now: time.Now}
}

func (s *snapshotService) Export(ctx context.Context) (*SnapshotResult, error) {
	if s.store == nil {
		return nil, ErrSnapshotsDisabled
	}

	routes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	if routes == nil {
		routes = []model.RouteConfig{}
	}

	body, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	// Nanosecond keys keep exports issued within the same second apart.
	key := "snapshots/routes-" + strconv.FormatInt(s.now().UnixNano(), 10) + ".json"
	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"route-count": strconv.Itoa(len(routes)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	res := &SnapshotResult{Key: info.Key, Size: info.Size, Routes: len(routes)}
	// A failed presign leaves URL empty.
	if u, err := s.store.PresignGet(ctx, info.Key, s.expiry); err == nil {
		res.URL = u
	}
	return res, nil
}
