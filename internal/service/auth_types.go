package service

import (
	"context"
	"time"

	"agroapi/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RemoteIdentity is a verified identity assertion coming out of an
// IdentityBackend, the input to reconciliation.
type RemoteIdentity struct {
	ID        uuid.UUID
	Email     string
	Confirmed bool
	Metadata  map[string]any

	// PasswordHash is stored when reconciliation creates or adopts a row;
	// nil leaves the column untouched.
	PasswordHash *string
}

// SessionTokens is the bearer pair handed to the client. Nothing here is
// persisted; possession is the credential.
type SessionTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	TokenType    string
}

// RegisterHints carries the original registration payload, used as the
// middle tier of field precedence when reconciliation creates a row.
type RegisterHints struct {
	Nome      string
	Role      entity.UsuarioRole
	ClienteID *uuid.UUID
}

// IdentityBackend abstracts who owns credentials and session lifecycle:
// this process (local) or Supabase (delegated). The facade and the
// reconciler are written against this interface only.
type IdentityBackend interface {
	Provider() string

	SignUp(ctx context.Context, email, password string, hints RegisterHints) (*RemoteIdentity, *SessionTokens, error)
	SignIn(ctx context.Context, email, password string) (*RemoteIdentity, *SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*RemoteIdentity, *SessionTokens, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (*RemoteIdentity, error)

	// SignOut is advisory; implementations never fail the caller.
	SignOut(ctx context.Context, refreshToken string) error

	// IssueSession mints a local pair for the reconciled user, or returns
	// (nil, nil) when sessions are provider-owned.
	IssueSession(usuario *entity.Usuario) (*SessionTokens, error)

	// VerifyAccessToken checks a bearer access token and returns its subject.
	VerifyAccessToken(token string) (uuid.UUID, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, email string, token string) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
