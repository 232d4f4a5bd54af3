package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NotFound("Post not found"), http.StatusNotFound},
		{Forbidden("nope"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{ErrMissingCredentials, http.StatusUnauthorized},
		{ErrExpiredToken, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusOf(tc.err), "error %v", tc.err)
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation(map[string]string{"title": "Title is required"})
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed", err.Error())
	assert.Equal(t, "Title is required", err.Fields["title"])
}
