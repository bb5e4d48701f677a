package middleware

import (
	"net/http"
	"strings"

	"agroapi/internal/entity"
	"agroapi/internal/repository"
	"agroapi/internal/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates the bearer token with whichever backend is
// active and loads the local row, so authorization always reflects the
// directory's current role, cliente and status.
type AuthMiddleware struct {
	Backend service.IdentityBackend
	Users   repository.UsuarioRepository
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Backend == nil || m.Users == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "não autorizado")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			// Cookie transport is an alternative to the Authorization
			// header for browser clients.
			if cookie, err := c.Cookie("accessToken"); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "não autorizado")
		}
		userID, err := m.Backend.VerifyAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "não autorizado")
		}
		usuario, err := m.Users.FindByID(c.Request().Context(), userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "erro interno")
		}
		if usuario == nil || usuario.Status != entity.UsuarioStatusAtivo {
			return echo.NewHTTPError(http.StatusUnauthorized, "não autorizado")
		}
		SetAuthContext(c, usuario.ID, string(usuario.Role), usuario.ClienteID)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
