package modrinth

import (
	"errors"
	"fmt"
)

// ErrRateLimitExceeded is returned when the API rejects a request because
// the rate limit is exhausted.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// APIError is an error response from the API: the request reached the
// server and the server turned it down.
type APIError struct {
	ErrorMsg    string `json:"error"`
	Description string `json:"description"`
	StatusCode  int    `json:"-"`
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.ErrorMsg, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.ErrorMsg, e.StatusCode)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, errorMsg, description string) *APIError {
	return &APIError{
		ErrorMsg:    errorMsg,
		Description: description,
		StatusCode:  statusCode,
	}
}

// TransportError wraps a failure to reach the API at all: DNS, dial,
// timeout, or a cancelled context. Op names the operation that failed.
type TransportError struct {
	Op  string
	Err error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}
