package model

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrPathRequired   = errors.New("path is required")
	ErrPathNotRooted  = errors.New("path must start with /")
	ErrMethodRequired = errors.New("method is required")
	ErrIDOutOfRange   = errors.New("id must not exceed 9223372036854775807")
)

// RouteConfig is an HTTP route descriptor declared by the backend.
// Field order is the JSON key order used when the view dumps its state.
type RouteConfig struct {
	ID          uint64  `json:"id"`
	Path        string  `json:"path"`
	Method      string  `json:"method"`
	Description *string `json:"description"`
}

// Validate checks the fields a route needs to be matched against requests.
// IDs are capped at the signed 64-bit range so every store can hold them.
func (r RouteConfig) Validate() error {
	if r.ID > math.MaxInt64 {
		return ErrIDOutOfRange
	}
	if r.Path == "" {
		return ErrPathRequired
	}
	if !strings.HasPrefix(r.Path, "/") {
		return ErrPathNotRooted
	}
	if strings.TrimSpace(r.Method) == "" {
		return ErrMethodRequired
	}
	return nil
}

// Matches reports whether a request with the given method and path hits this route.
// Methods compare case-insensitively, paths exactly.
func (r RouteConfig) Matches(method, path string) bool {
	return strings.EqualFold(r.Method, method) && r.Path == path
}

// StringPtr is a convenience for building optional descriptions.
func StringPtr(s string) *string {
	return &s
}
