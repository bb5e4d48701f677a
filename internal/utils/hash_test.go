package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenHashEquals(t *testing.T) {
	token, err := GenerateRandomToken(32)
	require.NoError(t, err)

	hash := HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.True(t, TokenHashEquals(hash, token))
	assert.False(t, TokenHashEquals(hash, token+"x"))
	assert.False(t, TokenHashEquals("", token))
}

func TestGenerateRandomTokenIsUnique(t *testing.T) {
	first, err := GenerateRandomToken(32)
	require.NoError(t, err)
	second, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@fazenda.com", NormalizeEmail("  Ana@Fazenda.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "ana.souza", EmailLocalPart("ana.souza@fazenda.com"))
	assert.Equal(t, "sem-arroba", EmailLocalPart("sem-arroba"))
	assert.Equal(t, "@dominio", EmailLocalPart("@dominio"))
}
