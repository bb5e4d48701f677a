package service

import (
	"agroapi/internal/entity"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Nome      string
	Email     string
	Password  string
	Role      entity.UsuarioRole
	ClienteID *uuid.UUID
}

type LoginInput struct {
	Email    string
	Password string
}

type UserSummary struct {
	ID        uuid.UUID
	Nome      string
	Email     string
	Role      entity.UsuarioRole
	ClienteID *uuid.UUID
}

// AuthResult is the unified session result of every auth flow. Tokens is
// nil when the provider still requires e-mail confirmation.
type AuthResult struct {
	User                      UserSummary
	Tokens                    *SessionTokens
	Provider                  string
	RequiresEmailConfirmation bool
}

// ForgotPasswordMessage is returned for every forgot-password request,
// registered e-mail or not, so responses carry no enumeration signal.
const ForgotPasswordMessage = "Se o e-mail estiver cadastrado, enviaremos instruções para redefinir a senha."

const PasswordResetMessage = "Senha redefinida com sucesso."

const LogoutMessage = "Logout realizado com sucesso."

func summaryFromUsuario(usuario *entity.Usuario) UserSummary {
	return UserSummary{
		ID:        usuario.ID,
		Nome:      usuario.Nome,
		Email:     usuario.Email,
		Role:      usuario.Role,
		ClienteID: usuario.ClienteID,
	}
}
