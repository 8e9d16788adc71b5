// Package apperr provides status-coded errors surfaced to API callers.
package apperr

import (
	"fmt"
	"net/http"
)

// Error carries an HTTP-equivalent status code and a human-readable message.
// Workflow stages return it so the first failing stage's status and message
// propagate to the caller verbatim.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// New creates an Error with an explicit status code.
func New(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadRequest marks malformed caller input.
func BadRequest(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// NotFound marks a missing entity.
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, format, args...)
}

// Conflict marks a write rejected by a concurrent change. Reserved; the
// diff-to-noop update path is reported as success, not conflict.
func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, format, args...)
}

// Internal marks infrastructure failures (write, table config, connection).
// None are caller-recoverable, so they share one status.
func Internal(format string, args ...interface{}) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// IsNotFound reports whether e is a not-found error.
func IsNotFound(e *Error) bool {
	return e != nil && e.Code == http.StatusNotFound
}
