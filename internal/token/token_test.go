package token

import (
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tokenString, err := svc.Issue(42, "author@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "author@example.com", claims.Email)
	assert.Equal(t, "blog-api", claims.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tokenString, err := svc.Issue(1, "author@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issued, err := NewService("secret-a", time.Hour).Issue(1, "author@example.com")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(issued)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyWrongAlgorithm(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	// Same secret, different signing method
	claims := Claims{
		UserID: 1,
		Email:  "author@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "blog-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	claims := Claims{
		UserID: 1,
		Email:  "author@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "token %q", tokenString)
	}
}

func TestIssuedTokensDifferOverTime(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	first, err := svc.Issue(1, "author@example.com")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond) // iat has second granularity
	second, err := svc.Issue(1, "author@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
