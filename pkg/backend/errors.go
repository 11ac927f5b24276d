package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrNotFound is matched by a 404 APIError.
	ErrNotFound = errors.New("backend: not found")
	// ErrBadRequest is matched by any other 4xx APIError.
	ErrBadRequest = errors.New("backend: bad request")
	// ErrServer is matched by a 5xx APIError.
	ErrServer = errors.New("backend: server error")
	// ErrMalformedResponse is returned when a 2xx body does not match its schema.
	ErrMalformedResponse = errors.New("backend: malformed response")
	// ErrAudioTooLarge is returned when synthesized audio exceeds the client's limit.
	ErrAudioTooLarge = errors.New("backend: audio too large")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Op         string
	StatusCode int
	// Detail is the backend's "detail" message, empty when the body had none.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: backend returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage returns the backend's detail text for display.
func (e *APIError) UserMessage() string { return e.Detail }

// Unwrap maps the status code onto a sentinel.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrBadRequest
	default:
		return ErrServer
	}
}

func newAPIError(op string, status int, body []byte) *APIError {
	return &APIError{Op: op, StatusCode: status, Detail: extractDetail(body)}
}

// extractDetail extracts the "detail" field from a JSON error body. FastAPI uses a
// plain string for HTTPException and a list of {loc, msg} objects for request
// validation failures.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil || len(parsed.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(parsed.Detail, &s) == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if json.Unmarshal(parsed.Detail, &items) != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		if it.Msg == "" {
			continue
		}
		if field := lastLoc(it.Loc); field != "" {
			msgs = append(msgs, field+": "+it.Msg)
		} else {
			msgs = append(msgs, it.Msg)
		}
	}
	return strings.Join(msgs, "; ")
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

func malformed(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrMalformedResponse)
}
