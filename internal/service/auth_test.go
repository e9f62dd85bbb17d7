package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aremaru/backend/internal/service"
)

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	svc := service.NewIdentityService("test-secret")
	token := signToken(t, "test-secret", "ext-user-1", time.Now().Add(time.Hour))

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ext-user-1", subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := service.NewIdentityService("test-secret")
	token := signToken(t, "other-secret", "ext-user-1", time.Now().Add(time.Hour))

	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := service.NewIdentityService("test-secret")
	token := signToken(t, "test-secret", "ext-user-1", time.Now().Add(-time.Hour))

	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := service.NewIdentityService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenMissingSubject(t *testing.T) {
	svc := service.NewIdentityService("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
