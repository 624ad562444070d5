package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bffmvp/internal/model"
)

func TestRouteStore(t *testing.T) {
	ctx := context.Background()
	s := NewRouteStore()

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, s.Create(ctx, model.RouteConfig{ID: 2, Path: "/b", Method: "GET"}))
	require.NoError(t, s.Create(ctx, model.RouteConfig{ID: 1, Path: "/a", Method: "GET"}))
	require.NoError(t, s.Create(ctx, model.RouteConfig{ID: 1, Path: "/a", Method: "GET"}))

	got, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, uint64(1), got[2].ID)

	got[0].Path = "/mutated"
	again, _ := s.List(ctx)
	assert.Equal(t, "/b", again[0].Path)
}

func TestRequestLogStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewRequestLogStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, model.RequestLog{Path: fmt.Sprintf("/%d", i), Status: 200}, 3))
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "/2", got[0].Path)
	assert.Equal(t, "/4", got[2].Path)
}

func TestRequestLogStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewRequestLogStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, model.RequestLog{Path: "/x"}, 20)
			_, _ = s.List(ctx)
		}()
	}
	wg.Wait()

	got, _ := s.List(ctx)
	assert.Len(t, got, 20)
}
