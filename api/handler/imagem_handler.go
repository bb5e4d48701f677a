package handler

import (
	"net/http"

	"agroapi/internal/service"

	"github.com/labstack/echo/v4"
)

type ImagemHandler struct {
	Service *service.ImagemService
}

func NewImagemHandler(svc *service.ImagemService) *ImagemHandler {
	return &ImagemHandler{Service: svc}
}

func (h *ImagemHandler) List(c echo.Context) error {
	imagens, err := h.Service.ListTiffImages(c.Request().Context(), c.QueryParam("prefix"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"message": "falha ao listar imagens"})
	}
	return c.JSON(http.StatusOK, imagens)
}
