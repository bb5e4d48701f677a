package utils

import (
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
)

// ResetToken is the composite handed to the user during a self-hosted
// password reset: the subject id allows a stateless row lookup, the secret
// is what actually authorizes the change. Encoded as a struct instead of a
// delimited string so the subject id format can never collide with a
// separator.
type ResetToken struct {
	SubjectID uuid.UUID `json:"uid"`
	Secret    string    `json:"sec"`
}

func (t ResetToken) Encode() (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeResetToken(encoded string) (ResetToken, error) {
	var token ResetToken
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ResetToken{}, ErrInvalidToken
	}
	if err := json.Unmarshal(raw, &token); err != nil {
		return ResetToken{}, ErrInvalidToken
	}
	if token.SubjectID == uuid.Nil || token.Secret == "" {
		return ResetToken{}, ErrInvalidToken
	}
	return token, nil
}
