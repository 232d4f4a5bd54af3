// Package response writes the API's JSON envelope and is the single point
// where errors are mapped to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/blog-service/internal/apperrors"
)

// Body is the envelope every endpoint responds with.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes a response body with the given status code.
func JSON(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// OK writes a 200 success response.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Body{Success: true, Message: message, Data: data})
}

// Created writes a 201 success response.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Body{Success: true, Message: message, Data: data})
}

// Error maps err to a status code and writes the failure envelope.
// Unrecognized errors become 500 without leaking internals.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body := Body{Success: false, Message: appErr.Message}
		if len(appErr.Fields) > 0 {
			body.Errors = appErr.Fields
		}
		JSON(w, appErr.Status, body)
		return
	}
	JSON(w, http.StatusInternalServerError, Body{Success: false, Message: "Internal server error"})
}
