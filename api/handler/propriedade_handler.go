package handler

import (
	"errors"
	"net/http"

	"agroapi/api/middleware"
	"agroapi/internal/dto"
	"agroapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PropriedadeHandler struct {
	Service  *service.PropriedadeService
	Validate *validator.Validate
}

func NewPropriedadeHandler(svc *service.PropriedadeService, validate *validator.Validate) *PropriedadeHandler {
	return &PropriedadeHandler{Service: svc, Validate: validate}
}

// clienteIDFromRequest resolves the cliente scope of the caller; property
// and plot resources are invisible outside it.
func clienteIDFromRequest(c echo.Context) (uuid.UUID, error) {
	clienteID, ok := middleware.ClienteIDFromContext(c)
	if !ok || clienteID == nil {
		return uuid.Nil, errors.New("usuário sem cliente associado")
	}
	return *clienteID, nil
}

func (h *PropriedadeHandler) Create(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}

	var req dto.CreatePropriedadeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	input := service.CreatePropriedadeInput{
		Nome:             req.Nome,
		CodigoInterno:    req.CodigoInterno,
		CodigoSicar:      req.CodigoSicar,
		Geojson:          []byte(req.Geojson),
		AreaHectares:     req.AreaHectares,
		CulturaPrincipal: req.CulturaPrincipal,
		SafraAtual:       req.SafraAtual,
	}
	propriedade, err := h.Service.Create(c.Request().Context(), input, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.PropriedadeResponseFromEntity(propriedade))
}

func (h *PropriedadeHandler) List(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	propriedades, err := h.Service.FindAll(c.Request().Context(), clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PropriedadeResponsesFromEntities(propriedades))
}

func (h *PropriedadeHandler) Get(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("id inválido"))
	}
	propriedade, err := h.Service.FindByID(c.Request().Context(), id, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PropriedadeResponseFromEntity(propriedade))
}

func (h *PropriedadeHandler) Update(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("id inválido"))
	}

	var req dto.UpdatePropriedadeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	input := service.UpdatePropriedadeInput{
		Nome:             req.Nome,
		CodigoInterno:    req.CodigoInterno,
		CodigoSicar:      req.CodigoSicar,
		Geojson:          []byte(req.Geojson),
		AreaHectares:     req.AreaHectares,
		CulturaPrincipal: req.CulturaPrincipal,
		SafraAtual:       req.SafraAtual,
	}
	propriedade, err := h.Service.Update(c.Request().Context(), id, input, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PropriedadeResponseFromEntity(propriedade))
}

func (h *PropriedadeHandler) Delete(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("id inválido"))
	}
	if err := h.Service.Delete(c.Request().Context(), id, clienteID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
