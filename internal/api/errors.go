package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the collaborator boundary. Callers branch on these
// with errors.Is; each maps to a distinct user-facing message.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrNotFound     = errors.New("resource not found")
	ErrServer       = errors.New("server error")
	ErrConnection   = errors.New("cannot connect to server")
)

// StatusError carries a non-2xx response, keeping any server-provided
// message for display.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap maps the status code onto the matching sentinel so errors.Is
// works across the boundary. Token expiry (401/403) unwraps to
// ErrAuthRequired, which forces the session back to unauthenticated.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrAuthRequired
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrServer
	default:
		return nil
	}
}

// UserMessage renders an error as the message shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthRequired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrNotFound):
		return "Resource not found."
	case errors.Is(err, ErrServer):
		return "Server error. Please try again later."
	case errors.Is(err, ErrConnection):
		return "Cannot connect to server. Please check your connection."
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
