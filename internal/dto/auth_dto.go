package dto

import (
	"time"

	"agroapi/internal/entity"
	"agroapi/internal/service"
)

type RegisterRequest struct {
	Nome      string  `json:"nome" validate:"required,min=3,max=150"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin gestor analista cliente"`
	ClienteID *string `json:"clienteId" validate:"omitempty,uuid"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"omitempty"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"omitempty"`
}

type AuthUserResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	ClienteID *string `json:"clienteId"`
}

type AuthTokensResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	TokenType    string     `json:"tokenType,omitempty"`
}

type AuthResponse struct {
	User                      AuthUserResponse    `json:"user"`
	Tokens                    *AuthTokensResponse `json:"tokens,omitempty"`
	Provider                  string              `json:"provider,omitempty"`
	RequiresEmailConfirmation bool                `json:"requiresEmailConfirmation,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func AuthResponseFromResult(result *service.AuthResult) AuthResponse {
	response := AuthResponse{
		User: AuthUserResponse{
			ID:    result.User.ID.String(),
			Nome:  result.User.Nome,
			Email: result.User.Email,
			Role:  string(result.User.Role),
		},
		Provider:                  result.Provider,
		RequiresEmailConfirmation: result.RequiresEmailConfirmation,
	}
	if result.User.ClienteID != nil {
		clienteID := result.User.ClienteID.String()
		response.User.ClienteID = &clienteID
	}
	if result.Tokens != nil {
		response.Tokens = &AuthTokensResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			ExpiresAt:    result.Tokens.ExpiresAt,
			TokenType:    result.Tokens.TokenType,
		}
	}
	return response
}

type UserResponse struct {
	ID        string     `json:"id"`
	Nome      string     `json:"nome"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	ClienteID *string    `json:"clienteId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func UserResponseFromEntity(usuario *entity.Usuario) UserResponse {
	response := UserResponse{
		ID:        usuario.ID.String(),
		Nome:      usuario.Nome,
		Email:     usuario.Email,
		Role:      string(usuario.Role),
		Status:    string(usuario.Status),
		CreatedAt: usuario.CreatedAt,
		UpdatedAt: usuario.UpdatedAt,
	}
	if usuario.ClienteID != nil {
		clienteID := usuario.ClienteID.String()
		response.ClienteID = &clienteID
	}
	return response
}
