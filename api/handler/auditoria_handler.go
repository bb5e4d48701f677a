package handler

import (
	"net/http"
	"strconv"

	"agroapi/internal/dto"
	"agroapi/internal/service"

	"github.com/labstack/echo/v4"
)

type AuditoriaHandler struct {
	Service *service.AuthService
}

func NewAuditoriaHandler(svc *service.AuthService) *AuditoriaHandler {
	return &AuditoriaHandler{Service: svc}
}

func (h *AuditoriaHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	registros, err := h.Service.ListAuditoria(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	response := make([]dto.AuditoriaResponse, 0, len(registros))
	for i := range registros {
		response = append(response, dto.AuditoriaResponseFromEntity(&registros[i]))
	}
	return c.JSON(http.StatusOK, response)
}
