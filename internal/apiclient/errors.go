package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork means no response was received at all.
	ErrNetwork = errors.New("network error")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

const NetworkMessage = "Network error - please check your connection"

// APIError is a non-2xx answer from the REST API.
type APIError struct {
	Op         string // "GET /api/client"
	StatusCode int
	Message    string // server-provided message, if any
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// UserMessage picks the text shown to the operator for a failed action: the
// server's message when it sent one, the connectivity hint when nothing came
// back, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrNetwork) {
		return NetworkMessage
	}
	return fallback
}

// StatusCode maps err to the status the console should answer with.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if errors.Is(err, ErrNetwork) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
