package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() TokenManager {
	return TokenManager{
		AccessSecret:    []byte("access-secret"),
		RefreshSecret:   []byte("refresh-secret"),
		Issuer:          "agroapi-test",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func TestTokenManagerRoundTrip(t *testing.T) {
	manager := newTestManager()
	clienteID := "9f0c6f5a-0000-4000-8000-000000000001"

	token, expiresAt, err := manager.IssueAccessToken("subject-1", "cliente", &clienteID)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.Subject)
	assert.Equal(t, "cliente", claims.Role)
	require.NotNil(t, claims.ClienteID)
	assert.Equal(t, clienteID, *claims.ClienteID)
	assert.Equal(t, "agroapi-test", claims.Issuer)
}

func TestTokenManagerRejectsCrossKindReplay(t *testing.T) {
	manager := newTestManager()

	access, _, err := manager.IssueAccessToken("subject-1", "admin", nil)
	require.NoError(t, err)
	refresh, _, err := manager.IssueRefreshToken("subject-1", "admin", nil)
	require.NoError(t, err)

	_, err = manager.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = manager.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerRejectsWrongSecret(t *testing.T) {
	manager := newTestManager()
	other := newTestManager()
	other.AccessSecret = []byte("another-secret")

	token, _, err := manager.IssueAccessToken("subject-1", "gestor", nil)
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerRejectsExpiredToken(t *testing.T) {
	manager := newTestManager()
	manager.AccessTokenTTL = -time.Minute

	token, _, err := manager.IssueAccessToken("subject-1", "cliente", nil)
	require.NoError(t, err)

	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	manager := newTestManager()

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := manager.ParseAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseSubject(t *testing.T) {
	manager := TokenManager{
		AccessSecret:   []byte("provider-secret"),
		AccessTokenTTL: time.Minute,
	}
	token, _, err := manager.IssueAccessToken("remote-subject", "cliente", nil)
	require.NoError(t, err)

	subject, err := ParseSubject(token, []byte("provider-secret"))
	require.NoError(t, err)
	assert.Equal(t, "remote-subject", subject)

	_, err = ParseSubject(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
