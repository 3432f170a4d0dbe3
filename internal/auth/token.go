package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loadlink/internal/domain"
)

// ErrInvalidToken is returned when a bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager mints and verifies bearer tokens carrying a principal.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate mints a signed token for the given user.
func (m *TokenManager) Generate(userID string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token string and returns the principal it encodes.
func (m *TokenManager) Verify(tokenStr string) (*domain.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if sub == "" || !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &domain.Principal{ID: sub, Role: role}, nil
}
