package service

import (
	"context"
	"time"

	"agroapi/internal/entity"
	"agroapi/internal/repository"
	"agroapi/internal/utils"

	"github.com/google/uuid"
)

// Pre-computed bcrypt hash compared against when the email is unknown, so a
// login attempt takes the same time either way.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const localProvider = "local"

// LocalBackend owns credentials directly: bcrypt password hashes on the user
// row, HMAC-signed token pairs, and a self-hosted reset-token flow.
type LocalBackend struct {
	users  repository.UsuarioRepository
	hasher PasswordHasher
	tokens utils.TokenManager
	email  EmailSender
	clock  Clock

	resetTokenTTL time.Duration
}

func NewLocalBackend(
	users repository.UsuarioRepository,
	hasher PasswordHasher,
	tokens utils.TokenManager,
	email EmailSender,
	clock Clock,
	resetTokenTTL time.Duration,
) *LocalBackend {
	if clock == nil {
		clock = RealClock{}
	}
	if resetTokenTTL == 0 {
		resetTokenTTL = time.Hour
	}
	return &LocalBackend{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		email:         email,
		clock:         clock,
		resetTokenTTL: resetTokenTTL,
	}
}

func (b *LocalBackend) Provider() string {
	return localProvider
}

func (b *LocalBackend) SignUp(ctx context.Context, email, password string, hints RegisterHints) (*RemoteIdentity, *SessionTokens, error) {
	hash, err := b.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}
	identity := &RemoteIdentity{
		ID:           uuid.New(),
		Email:        email,
		Confirmed:    true,
		PasswordHash: &hash,
	}
	return identity, nil, nil
}

func (b *LocalBackend) SignIn(ctx context.Context, email, password string) (*RemoteIdentity, *SessionTokens, error) {
	usuario, err := b.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if usuario == nil || usuario.PasswordHash == nil || *usuario.PasswordHash == entity.PasswordManagedByProvider {
		_ = b.hasher.Verify(dummyPasswordHash, password)
		return nil, nil, ErrInvalidCredentials
	}
	if !b.hasher.Verify(*usuario.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	identity := b.identityFromUsuario(usuario)
	return &identity, nil, nil
}

func (b *LocalBackend) Refresh(ctx context.Context, refreshToken string) (*RemoteIdentity, *SessionTokens, error) {
	claims, err := b.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	usuario, err := b.users.FindByID(ctx, subject)
	if err != nil {
		return nil, nil, err
	}
	if usuario == nil {
		return nil, nil, ErrInvalidToken
	}
	identity := b.identityFromUsuario(usuario)
	return &identity, nil, nil
}

// ForgotPassword persists only a hash of the reset secret; the composite
// token mailed to the user is the sole copy of the secret itself.
func (b *LocalBackend) ForgotPassword(ctx context.Context, email string) error {
	usuario, err := b.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if usuario == nil {
		return nil
	}

	secret, err := utils.GenerateRandomToken(32)
	if err != nil {
		return err
	}
	composite, err := utils.ResetToken{SubjectID: usuario.ID, Secret: secret}.Encode()
	if err != nil {
		return err
	}

	expiresAt := b.clock.Now().Add(b.resetTokenTTL)
	if _, err := b.users.Update(ctx, usuario.ID, map[string]any{
		"reset_token_hash":       utils.HashToken(secret),
		"reset_token_expires_at": expiresAt,
	}); err != nil {
		return err
	}

	if b.email != nil {
		return b.email.SendPasswordResetEmail(ctx, usuario.Email, composite)
	}
	return nil
}

// ResetPassword consumes the token and writes the new hash in one update,
// so a token can never authorize two changes.
func (b *LocalBackend) ResetPassword(ctx context.Context, token, newPassword string) (*RemoteIdentity, error) {
	parsed, err := utils.DecodeResetToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	usuario, err := b.users.FindByID(ctx, parsed.SubjectID)
	if err != nil {
		return nil, err
	}
	if usuario == nil || usuario.ResetTokenHash == nil || usuario.ResetTokenExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if b.clock.Now().After(*usuario.ResetTokenExpiresAt) {
		return nil, ErrInvalidToken
	}
	if !utils.TokenHashEquals(*usuario.ResetTokenHash, parsed.Secret) {
		return nil, ErrInvalidToken
	}

	hash, err := b.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	updated, err := b.users.Update(ctx, usuario.ID, map[string]any{
		"password_hash":          hash,
		"reset_token_hash":       nil,
		"reset_token_expires_at": nil,
	})
	if err != nil {
		return nil, err
	}

	identity := b.identityFromUsuario(updated)
	return &identity, nil
}

// SignOut is purely advisory here: bearer tokens stay valid until natural
// expiry.
func (b *LocalBackend) SignOut(ctx context.Context, refreshToken string) error {
	return nil
}

func (b *LocalBackend) IssueSession(usuario *entity.Usuario) (*SessionTokens, error) {
	clienteID := clienteIDString(usuario)
	access, expiresAt, err := b.tokens.IssueAccessToken(usuario.ID.String(), string(usuario.Role), clienteID)
	if err != nil {
		return nil, err
	}
	refresh, _, err := b.tokens.IssueRefreshToken(usuario.ID.String(), string(usuario.Role), clienteID)
	if err != nil {
		return nil, err
	}
	return &SessionTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    &expiresAt,
		TokenType:    "bearer",
	}, nil
}

func (b *LocalBackend) VerifyAccessToken(token string) (uuid.UUID, error) {
	claims, err := b.tokens.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return subject, nil
}

func (b *LocalBackend) identityFromUsuario(usuario *entity.Usuario) RemoteIdentity {
	return RemoteIdentity{
		ID:    usuario.ID,
		Email: usuario.Email,
		// Status is locally owned in this mode; confirmation mirrors it so
		// reconciliation never fights the directory.
		Confirmed: usuario.Status == entity.UsuarioStatusAtivo,
	}
}

func clienteIDString(usuario *entity.Usuario) *string {
	if usuario.ClienteID == nil {
		return nil
	}
	value := usuario.ClienteID.String()
	return &value
}
