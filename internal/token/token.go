package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "blog-api"

// Claims is the verified identity payload carried by a token.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-bounded identity tokens.
// It holds no state beyond the secret and lifetime; verification is a
// pure function of (token, secret, current time).
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// NewService creates a token service with the given signing secret and
// token lifetime.
func NewService(secret string, lifetime time.Duration) *Service {
	return &Service{secret: []byte(secret), lifetime: lifetime}
}

// Issue produces a signed HS256 token for the given user.
func (s *Service) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token, returning its claims. Expired
// tokens fail with apperrors.ErrExpiredToken; anything else that does not
// verify (bad signature, wrong algorithm, wrong issuer, malformed
// structure) fails with apperrors.ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
