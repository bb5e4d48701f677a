package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey    = "auth_user_id"
	contextRoleKey      = "auth_role"
	contextClienteIDKey = "auth_cliente_id"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, role string, clienteID *uuid.UUID) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextRoleKey, role)
	c.Set(contextClienteIDKey, clienteID)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func RoleFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(string)
	return role, ok
}

func ClienteIDFromContext(c echo.Context) (*uuid.UUID, bool) {
	value := c.Get(contextClienteIDKey)
	clienteID, ok := value.(*uuid.UUID)
	return clienteID, ok
}
