package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// IdentityService verifies tokens issued by the external identity
// provider. The provider owns registration, login and session teardown;
// this service only checks the signature and extracts the subject.
type IdentityService struct {
	jwtSecret string
}

// NewIdentityService creates a new IdentityService instance.
func NewIdentityService(jwtSecret string) *IdentityService {
	return &IdentityService{
		jwtSecret: jwtSecret,
	}
}

// ValidateToken verifies the token and returns its subject, the opaque
// external user id.
func (s *IdentityService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
