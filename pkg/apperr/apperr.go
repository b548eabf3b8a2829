// Package apperr defines the status-coded error taxonomy shared by services
// and controllers.
//
// Services return these; the controller layer translates them into the JSON
// envelope via ctx.Fail. Anything that is not an *apperr.Error surfaces as a
// 500 with a generic message.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain error carrying the HTTP status it maps to.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.cause }

// Wrap attaches an underlying cause while keeping the status and message.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Status: e.Status, Message: e.Message, cause: cause}
}

// New builds an error with an explicit status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest → 400: validation failures, invalid rating value, bad owner.
func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// Unauthorized → 401: missing/invalid/expired token, bad credentials.
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Forbidden → 403: role mismatch, non-author edit.
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// NotFound → 404: missing entity.
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict → 409: duplicate email, duplicate rating.
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// From extracts an *Error from err's chain. ok is false for unexpected
// errors, which callers should treat as 500s.
func From(err error) (appErr *Error, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
