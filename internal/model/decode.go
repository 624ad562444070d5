package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrSchema reports JSON that does not have the RouteConfig shape.
var ErrSchema = errors.New("route config schema violation")

// wireRoute mirrors RouteConfig with every field optional so missing
// required keys can be told apart from zero values.
type wireRoute struct {
	ID          json.RawMessage `json:"id"`
	Path        *string         `json:"path"`
	Method      *string         `json:"method"`
	Description *string         `json:"description"`
}

// DecodeRouteConfig parses one RouteConfig object. id must be a non-negative
// integer, path and method strings, description a string or null. Unknown keys are ignored.
func DecodeRouteConfig(raw []byte) (RouteConfig, error) {
	var w wireRoute
	if err := json.Unmarshal(raw, &w); err != nil {
		return RouteConfig{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if len(w.ID) == 0 || string(w.ID) == "null" {
		return RouteConfig{}, fmt.Errorf("%w: id is required", ErrSchema)
	}
	id, err := strconv.ParseUint(string(w.ID), 10, 64)
	if err != nil {
		return RouteConfig{}, fmt.Errorf("%w: id %s is not a non-negative integer", ErrSchema, w.ID)
	}
	if w.Path == nil {
		return RouteConfig{}, fmt.Errorf("%w: path is required", ErrSchema)
	}
	if w.Method == nil {
		return RouteConfig{}, fmt.Errorf("%w: method is required", ErrSchema)
	}
	return RouteConfig{
		ID:          id,
		Path:        *w.Path,
		Method:      *w.Method,
		Description: w.Description,
	}, nil
}

// DecodeRouteConfigs parses a JSON array of RouteConfig objects, keeping order.
// An empty or null document yields an empty, non-nil slice.
func DecodeRouteConfigs(body []byte) ([]RouteConfig, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []RouteConfig{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	routes := make([]RouteConfig, 0, len(items))
	for i, raw := range items {
		r, err := DecodeRouteConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		routes = append(routes, r)
	}
	return routes, nil
}
