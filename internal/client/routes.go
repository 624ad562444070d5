// Package client fetches route configuration from the backend over HTTP and
// validates the response shape before handing it to callers.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"bffmvp/internal/model"
)

// RoutesPath is the backend resource holding the current route configuration.
const RoutesPath = "/api/routes"

// maxBodyBytes caps how much of a response is read before decoding.
const maxBodyBytes = 4 << 20

var (
	// ErrNetworkFailure covers transport errors, timeouts and non-2xx statuses.
	ErrNetworkFailure = errors.New("network failure")
	// ErrMalformedResponse is returned when the body is not an array of route configs.
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPClient is the subset of *http.Client used by RoutesClient.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// RoutesClient issues GET /api/routes against BaseURL.
type RoutesClient struct {
	BaseURL    string
	HTTPClient HTTPClient
}

// New builds a RoutesClient whose transport is traced with otelhttp.
func New(baseURL string, timeout time.Duration) *RoutesClient {
	return &RoutesClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchRoutes returns the backend's route list in response order.
// A null or empty body yields an empty, non-nil slice.
func (c *RoutesClient) FetchRoutes(ctx context.Context) ([]model.RouteConfig, error) {
	url := strings.TrimRight(c.BaseURL, "/") + RoutesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http client: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: bad response, code %d: %s", ErrNetworkFailure, resp.StatusCode, snippet(body))
	}

	return DecodeRoutes(body)
}

// DecodeRoutes validates body against the RouteConfig schema.
func DecodeRoutes(body []byte) ([]model.RouteConfig, error) {
	routes, err := model.DecodeRouteConfigs(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return routes, nil
}

func snippet(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
