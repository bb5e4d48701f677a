package utils

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenRoundTrip(t *testing.T) {
	original := ResetToken{SubjectID: uuid.New(), Secret: "s3gr3do"}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeResetToken(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeResetTokenRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not base64":   "%%%",
		"not json":     base64.RawURLEncoding.EncodeToString([]byte("texto")),
		"nil subject":  mustEncode(t, ResetToken{Secret: "s"}),
		"empty secret": mustEncode(t, ResetToken{SubjectID: uuid.New()}),
	}
	for name, encoded := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeResetToken(encoded)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustEncode(t *testing.T, token ResetToken) string {
	t.Helper()
	encoded, err := token.Encode()
	require.NoError(t, err)
	return encoded
}
