package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/token"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *token.Service, optional bool) (*mux.Router, *token.Claims) {
	var seen token.Claims
	r := mux.NewRouter()
	if optional {
		r.Use(OptionalAuth(tokens))
	} else {
		r.Use(Authenticate(tokens))
	}
	r.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		if claims := ClaimsFromContext(r.Context()); claims != nil {
			seen = *claims
		}
		w.WriteHeader(http.StatusOK)
	})
	return r, &seen
}

func doRequest(r *mux.Router, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := newRouter(token.NewService("secret", time.Hour), false)

	rec := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", decodeMessage(t, rec))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	valid, err := tokens.Issue(1, "a@example.com")
	require.NoError(t, err)

	r, _ := newRouter(tokens, false)
	for _, header := range []string{
		"Token " + valid,
		"Bearer",
		"Bearer a b",
		valid,
	} {
		rec := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Invalid authorization format. Use: Bearer <token>", decodeMessage(t, rec))
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _ := newRouter(token.NewService("secret", time.Hour), false)

	rec := doRequest(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, rec))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := token.NewService("secret", -time.Minute)
	tokenString, err := expired.Issue(1, "a@example.com")
	require.NoError(t, err)

	r, _ := newRouter(token.NewService("secret", time.Hour), false)
	rec := doRequest(r, "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has expired", decodeMessage(t, rec))
}

func TestAuthenticateAttachesClaims(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	tokenString, err := tokens.Issue(7, "author@example.com")
	require.NoError(t, err)

	r, seen := newRouter(tokens, false)
	rec := doRequest(r, "Bearer "+tokenString)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), seen.UserID)
	assert.Equal(t, "author@example.com", seen.Email)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	r, seen := newRouter(tokens, true)

	for _, header := range []string{"", "Token x", "Bearer not-a-token"} {
		rec := doRequest(r, header)
		assert.Equal(t, http.StatusOK, rec.Code, "header %q", header)
		assert.Zero(t, seen.UserID, "header %q", header)
	}
}

func TestOptionalAuthAttachesValidClaims(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	tokenString, err := tokens.Issue(9, "author@example.com")
	require.NoError(t, err)

	r, seen := newRouter(tokens, true)
	rec := doRequest(r, "Bearer "+tokenString)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), seen.UserID)
}
