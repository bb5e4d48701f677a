package handler

import (
	"errors"
	"net/http"
	"time"

	"agroapi/api/middleware"
	"agroapi/internal/dto"
	"agroapi/internal/entity"
	"agroapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

type AuthHandler struct {
	Service       *service.AuthService
	Validate      *validator.Validate
	CookieDomain  string
	SecureCookies bool
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:       svc,
		Validate:      validate,
		SecureCookies: true,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.RegisterInput{
		Nome:     req.Nome,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.UsuarioRole(req.Role),
	}
	if req.ClienteID != nil {
		clienteID, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("clienteId inválido"))
		}
		input.ClienteID = &clienteID
	}

	result, err := h.Service.Register(c.Request().Context(), input, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setSessionCookies(c, result.Tokens)
	return c.JSON(http.StatusCreated, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.LoginInput{Email: req.Email, Password: req.Password}
	result, err := h.Service.Login(c.Request().Context(), input, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setSessionCookies(c, result.Tokens)
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.ResetPassword(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	// The body is optional; browser clients send the token as a cookie.
	var req dto.RefreshTokenRequest
	_ = decodeJSON(c, &req)
	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken = h.readCookie(c, refreshCookieName)
	}
	if refreshToken == "" {
		return writeError(c, http.StatusUnauthorized, errors.New("refresh token ausente"))
	}

	result, err := h.Service.RefreshTokens(c.Request().Context(), refreshToken)
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setSessionCookies(c, result.Tokens)
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req dto.LogoutRequest
	_ = decodeJSON(c, &req)
	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken = h.readCookie(c, refreshCookieName)
	}

	var usuarioID *uuid.UUID
	if id, ok := middleware.UserIDFromContext(c); ok {
		usuarioID = &id
	}
	message := h.Service.Logout(c.Request().Context(), refreshToken, usuarioID, stringPtr(c.RealIP()))
	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) Me(c echo.Context) error {
	usuarioID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("não autorizado"))
	}
	usuario, err := h.Service.GetCurrentUser(c.Request().Context(), usuarioID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(usuario))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *AuthHandler) setSessionCookies(c echo.Context, tokens *service.SessionTokens) {
	if tokens == nil {
		return
	}
	accessExpiry := time.Now().Add(15 * time.Minute)
	if tokens.ExpiresAt != nil {
		accessExpiry = *tokens.ExpiresAt
	}
	h.setCookie(c, accessCookieName, tokens.AccessToken, accessExpiry)
	h.setCookie(c, refreshCookieName, tokens.RefreshToken, time.Now().Add(7*24*time.Hour))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	h.setCookie(c, accessCookieName, "", expired)
	h.setCookie(c, refreshCookieName, "", expired)
}

func (h *AuthHandler) setCookie(c echo.Context, name, value string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if value == "" {
		maxAge = -1
	}
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) readCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
