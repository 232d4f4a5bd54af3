package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/response"
	"github.com/Dan9191/blog-service/internal/token"
	"github.com/gorilla/mux"
)

type contextKey int

const claimsKey contextKey = iota

// WithClaims returns a new context carrying the verified claims.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the verified claims from the context.
// Returns nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey).(*token.Claims)
	return claims
}

// Authenticate verifies the "Authorization: Bearer <token>" header and
// attaches the verified claims to the request context. Requests without a
// valid token are rejected with 401; nothing is attached on failure.
func Authenticate(tokens *token.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifyRequest(tokens, r)
			if err != nil {
				response.Error(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth performs the same verification as Authenticate but never
// rejects: on any failure the request proceeds anonymously.
func OptionalAuth(tokens *token.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := verifyRequest(tokens, r); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verifyRequest(tokens *token.Service, r *http.Request) (*token.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.ErrMalformedCredentials
	}

	return tokens.Verify(parts[1])
}
