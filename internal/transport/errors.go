package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAllRoutesFailed   = errors.New("all routes failed")
	ErrNoRoutes          = errors.New("no routes configured")
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPStatusError is a non-2xx answer from one route.
type HTTPStatusError struct {
	Route      string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("route %s: %s", e.Route, e.Message())
}

// PgCode returns the PostgreSQL error code PostgREST puts in error bodies.
func (e *HTTPStatusError) PgCode() string {
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return ""
	}
	return payload.Code
}

// Message prefers the backend's own error/message field and falls back to
// the status and raw body.
func (e *HTTPStatusError) Message() string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
