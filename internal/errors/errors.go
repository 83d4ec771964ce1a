// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"net/http"
)

// RequestError is returned when the backend answers with a non-2xx status
// or cannot be reached at all (StatusCode 0).
type RequestError struct {
	Op         string
	StatusCode int
	Status     string
	Detail     string
}

func (e *RequestError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Status
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("failed to %s: %s", e.Op, msg)
}

// NewRequestError builds a RequestError from a response status line.
func NewRequestError(op string, statusCode int, status, detail string) error {
	return &RequestError{Op: op, StatusCode: statusCode, Status: status, Detail: detail}
}

// NotFoundError means an id could not be resolved, either because the
// routing key was malformed or because a successful fetch had no match.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError rejects user input before any backend call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
