package service

import (
	"context"
	"time"

	"agroapi/internal/entity"
	"agroapi/internal/supabase"
	"agroapi/internal/utils"

	"github.com/google/uuid"
)

const supabaseProvider = "supabase"

// SupabaseBackend delegates credentials, confirmation e-mails and session
// lifecycle to Supabase. The local directory only mirrors role, cliente
// association and status.
type SupabaseBackend struct {
	client *supabase.Client

	// jwtSecret verifies provider-issued HS256 tokens locally, without a
	// network round-trip per request.
	jwtSecret  []byte
	redirectTo string
}

func NewSupabaseBackend(client *supabase.Client, jwtSecret []byte, redirectTo string) *SupabaseBackend {
	return &SupabaseBackend{
		client:     client,
		jwtSecret:  jwtSecret,
		redirectTo: redirectTo,
	}
}

func (b *SupabaseBackend) Provider() string {
	return supabaseProvider
}

func (b *SupabaseBackend) SignUp(ctx context.Context, email, password string, hints RegisterHints) (*RemoteIdentity, *SessionTokens, error) {
	metadata := map[string]any{}
	if hints.Nome != "" {
		metadata["nome"] = hints.Nome
	}
	if hints.Role.Valid() {
		metadata["role"] = string(hints.Role)
	}
	if hints.ClienteID != nil {
		metadata["clienteId"] = hints.ClienteID.String()
	}

	user, session, err := b.client.SignUp(ctx, supabase.SignUpInput{
		Email:      email,
		Password:   password,
		Metadata:   metadata,
		RedirectTo: b.redirectTo,
	})
	if err != nil {
		return nil, nil, err
	}

	identity := b.identityFromRemote(user)
	return &identity, mapSession(session), nil
}

func (b *SupabaseBackend) SignIn(ctx context.Context, email, password string) (*RemoteIdentity, *SessionTokens, error) {
	session, err := b.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	identity := b.identityFromRemote(&session.User)
	return &identity, mapSession(session), nil
}

func (b *SupabaseBackend) Refresh(ctx context.Context, refreshToken string) (*RemoteIdentity, *SessionTokens, error) {
	session, err := b.client.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	identity := b.identityFromRemote(&session.User)
	return &identity, mapSession(session), nil
}

func (b *SupabaseBackend) ForgotPassword(ctx context.Context, email string) error {
	return b.client.ResetPasswordForEmail(ctx, email, b.redirectTo)
}

// ResetPassword verifies the provider-signed recovery token locally, then
// overwrites the password through the admin API.
func (b *SupabaseBackend) ResetPassword(ctx context.Context, token, newPassword string) (*RemoteIdentity, error) {
	subject, err := utils.ParseSubject(token, b.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := b.client.AdminUpdateUserByID(ctx, userID, map[string]any{"password": newPassword})
	if err != nil {
		return nil, err
	}
	identity := b.identityFromRemote(user)
	return &identity, nil
}

// SignOut asks the provider to revoke the session family behind the refresh
// token. Failures are swallowed upstream; logout is advisory.
func (b *SupabaseBackend) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	session, err := b.client.RefreshSession(ctx, refreshToken)
	if err != nil {
		return err
	}
	return b.client.SignOut(ctx, session.AccessToken)
}

// IssueSession returns nothing: sessions only ever come from the provider.
func (b *SupabaseBackend) IssueSession(usuario *entity.Usuario) (*SessionTokens, error) {
	return nil, nil
}

func (b *SupabaseBackend) VerifyAccessToken(token string) (uuid.UUID, error) {
	subject, err := utils.ParseSubject(token, b.jwtSecret)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

func (b *SupabaseBackend) identityFromRemote(user *supabase.RemoteUser) RemoteIdentity {
	sentinel := entity.PasswordManagedByProvider
	return RemoteIdentity{
		ID:           user.ID,
		Email:        user.Email,
		Confirmed:    user.Confirmed(),
		Metadata:     user.UserMetadata,
		PasswordHash: &sentinel,
	}
}

func mapSession(session *supabase.Session) *SessionTokens {
	if session == nil {
		return nil
	}
	tokens := &SessionTokens{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
	}
	if tokens.TokenType == "" {
		tokens.TokenType = "bearer"
	}
	if session.ExpiresAt > 0 {
		expiresAt := time.Unix(session.ExpiresAt, 0).UTC()
		tokens.ExpiresAt = &expiresAt
	}
	return tokens
}
