package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibe-gaming/newsletter/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and parses operator tokens for the protected routes.
type TokenManager interface {
	NewJWT(operator string) (string, time.Duration, error)
	Parse(accessToken string) (string, error)
}

type Manager struct {
	signingKey     string
	accessTokenTTL time.Duration
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	return &Manager{
		signingKey:     cfg.SigningKey,
		accessTokenTTL: cfg.AccessTokenTTL,
	}, nil
}

func (m *Manager) NewJWT(operator string) (string, time.Duration, error) {
	if operator == "" {
		return "", 0, errors.New("empty operator")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenTTL)),
		Subject:   operator,
	})

	accessToken, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, fmt.Errorf("sign jwt failed: %w", err)
	}

	return accessToken, m.accessTokenTTL, nil
}

// Parse validates accessToken and returns the operator it was issued to.
func (m *Manager) Parse(accessToken string) (string, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (i interface{}, err error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	})
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("get subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}
