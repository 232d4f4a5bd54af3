package apperrors

import (
	"errors"
	"net/http"
)

// Error is a user-visible failure with an HTTP status. Services return
// these to a single boundary point; nothing in between swallows them.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }

// Validation creates a 400 with per-field errors attached.
func Validation(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

// Sentinel errors for the credential taxonomy.
var (
	ErrMissingCredentials   = Unauthorized("Access denied. No token provided.")
	ErrMalformedCredentials = Unauthorized("Invalid authorization format. Use: Bearer <token>")
	ErrInvalidToken         = Unauthorized("Invalid token")
	ErrExpiredToken         = Unauthorized("Token has expired")
)

// StatusOf returns the HTTP status carried by err, or 500 for anything
// that is not an *Error.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
