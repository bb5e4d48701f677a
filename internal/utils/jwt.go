package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies the access/refresh token pair. The two
// token kinds use distinct secrets so one can never be replayed as the other.
type TokenManager struct {
	AccessSecret    []byte
	RefreshSecret   []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type SessionClaims struct {
	Role      string  `json:"role"`
	ClienteID *string `json:"cliente_id,omitempty"`
	jwt.RegisteredClaims
}

func (m TokenManager) IssueAccessToken(subject string, role string, clienteID *string) (string, time.Time, error) {
	ttl := m.AccessTokenTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return m.issue(subject, role, clienteID, m.AccessSecret, ttl)
}

func (m TokenManager) IssueRefreshToken(subject string, role string, clienteID *string) (string, time.Time, error) {
	ttl := m.RefreshTokenTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	return m.issue(subject, role, clienteID, m.RefreshSecret, ttl)
}

func (m TokenManager) issue(subject string, role string, clienteID *string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		Role:      role,
		ClienteID: clienteID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m TokenManager) ParseAccessToken(tokenString string) (*SessionClaims, error) {
	return parseWithSecret(tokenString, m.AccessSecret)
}

func (m TokenManager) ParseRefreshToken(tokenString string) (*SessionClaims, error) {
	return parseWithSecret(tokenString, m.RefreshSecret)
}

// parseWithSecret collapses expired, forged and malformed tokens into the
// same error so callers cannot distinguish them.
func parseWithSecret(tokenString string, secret []byte) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseSubject verifies a token signed with an externally owned secret and
// returns its subject. Used for provider-issued tokens in delegated mode.
func ParseSubject(tokenString string, secret []byte) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
