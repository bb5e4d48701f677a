package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"agroapi/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unclassified is a 500 with no detail leakage.
func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPropriedadeObrigatoria):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrRemoteUserWithoutEmail):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrDuplicateRecord),
		errors.Is(err, service.ErrPropriedadeDuplicada),
		errors.Is(err, service.ErrTalhaoDuplicado):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrPropriedadeNotFound),
		errors.Is(err, service.ErrTalhaoNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		return c.JSON(status, map[string]string{"message": "erro interno"})
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
