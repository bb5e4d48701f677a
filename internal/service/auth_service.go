package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agroapi/internal/entity"
	"agroapi/internal/repository"
	"agroapi/internal/supabase"
	"agroapi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuthService orchestrates registration, login, password recovery, token
// refresh and logout over an IdentityBackend. Every flow that authenticates
// a remote identity runs reconciliation before touching authorization state.
type AuthService struct {
	users      repository.UsuarioRepository
	backend    IdentityBackend
	reconciler *Reconciler
	auditoria  repository.AuditoriaRepository
}

func NewAuthService(
	users repository.UsuarioRepository,
	backend IdentityBackend,
	reconciler *Reconciler,
	auditoria repository.AuditoriaRepository,
) *AuthService {
	return &AuthService{
		users:      users,
		backend:    backend,
		reconciler: reconciler,
		auditoria:  auditoria,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hints := RegisterHints{
		Nome:      strings.TrimSpace(input.Nome),
		Role:      input.Role,
		ClienteID: input.ClienteID,
	}
	remote, tokens, err := s.backend.SignUp(ctx, email, input.Password, hints)
	if err != nil {
		return nil, asConflict(err)
	}

	usuario, err := s.reconciler.Reconcile(ctx, *remote, &hints)
	if err != nil {
		return nil, err
	}

	result := &AuthResult{
		User:     summaryFromUsuario(usuario),
		Tokens:   tokens,
		Provider: s.backend.Provider(),
	}
	if result.Tokens == nil {
		if usuario.Status == entity.UsuarioStatusAtivo {
			result.Tokens, err = s.backend.IssueSession(usuario)
			if err != nil {
				return nil, err
			}
		}
		result.RequiresEmailConfirmation = result.Tokens == nil
	}

	s.audit(ctx, &usuario.ID, ipAddress, entity.AuditoriaRegistro, nil)
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	remote, tokens, err := s.backend.SignIn(ctx, email, input.Password)
	if err != nil {
		s.audit(ctx, nil, ipAddress, entity.AuditoriaLoginFalha, map[string]any{"email": email})
		return nil, asUnauthorized(err, ErrInvalidCredentials)
	}

	usuario, err := s.reconciler.Reconcile(ctx, *remote, nil)
	if err != nil {
		return nil, err
	}
	if err := s.reconciler.EnsureActive(usuario); err != nil {
		s.audit(ctx, &usuario.ID, ipAddress, entity.AuditoriaLoginFalha, map[string]any{"motivo": "inativo"})
		return nil, err
	}

	if tokens == nil {
		tokens, err = s.backend.IssueSession(usuario)
		if err != nil {
			return nil, err
		}
	}

	s.audit(ctx, &usuario.ID, ipAddress, entity.AuditoriaLoginSucesso, nil)
	return &AuthResult{
		User:     summaryFromUsuario(usuario),
		Tokens:   tokens,
		Provider: s.backend.Provider(),
	}, nil
}

// ForgotPassword always reports success. Delivery problems are audited, but
// the response never reveals whether the e-mail exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrInvalidInput
	}

	normalized := utils.NormalizeEmail(email)
	if err := s.backend.ForgotPassword(ctx, normalized); err != nil {
		s.audit(ctx, nil, nil, entity.AuditoriaResetSenha, map[string]any{"erro": err.Error()})
	}
	return ForgotPasswordMessage, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (string, error) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(password) == "" {
		return "", ErrInvalidInput
	}

	remote, err := s.backend.ResetPassword(ctx, token, password)
	if err != nil {
		return "", asUnauthorized(err, ErrInvalidToken)
	}

	usuario, err := s.reconciler.Reconcile(ctx, *remote, nil)
	if err != nil {
		return "", err
	}

	s.audit(ctx, &usuario.ID, nil, entity.AuditoriaResetSenha, nil)
	return PasswordResetMessage, nil
}

func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidToken
	}

	remote, tokens, err := s.backend.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, asUnauthorized(err, ErrInvalidToken)
	}

	usuario, err := s.reconciler.Reconcile(ctx, *remote, nil)
	if err != nil {
		return nil, err
	}
	if err := s.reconciler.EnsureActive(usuario); err != nil {
		return nil, err
	}

	if tokens == nil {
		tokens, err = s.backend.IssueSession(usuario)
		if err != nil {
			return nil, err
		}
	}

	return &AuthResult{
		User:     summaryFromUsuario(usuario),
		Tokens:   tokens,
		Provider: s.backend.Provider(),
	}, nil
}

// Logout always succeeds from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, usuarioID *uuid.UUID, ipAddress *string) string {
	_ = s.backend.SignOut(ctx, refreshToken)
	s.audit(ctx, usuarioID, ipAddress, entity.AuditoriaLogout, nil)
	return LogoutMessage
}

func (s *AuthService) GetCurrentUser(ctx context.Context, usuarioID uuid.UUID) (*entity.Usuario, error) {
	usuario, err := s.users.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, ErrNotFound
	}
	return usuario, nil
}

// ListAuditoria returns the most recent auth audit records, newest first.
func (s *AuthService) ListAuditoria(ctx context.Context, limit int) ([]entity.RegistroAuditoria, error) {
	if s.auditoria == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.auditoria.FindRecent(ctx, limit)
}

func (s *AuthService) audit(ctx context.Context, usuarioID *uuid.UUID, ipAddress *string, acao entity.AuditoriaAcao, metadata map[string]any) {
	if s.auditoria == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			payload = datatypes.JSON(raw)
		}
	}
	_ = s.auditoria.Log(ctx, &entity.RegistroAuditoria{
		UsuarioID: usuarioID,
		IPAddress: ipAddress,
		Acao:      acao,
		Metadata:  payload,
	})
}

// asConflict keeps the provider's message but classifies the failure as a
// duplicate-identity conflict.
func asConflict(err error) error {
	var providerErr *supabase.Error
	if errors.As(err, &providerErr) {
		return fmt.Errorf("%w: %s", ErrEmailAlreadyRegistered, providerErr.Message)
	}
	return err
}

// asUnauthorized collapses provider rejections into the given generic
// sentinel; infrastructure errors pass through untouched.
func asUnauthorized(err error, sentinel error) error {
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken) {
		return err
	}
	var providerErr *supabase.Error
	if errors.As(err, &providerErr) {
		return sentinel
	}
	return err
}
