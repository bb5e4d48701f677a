package handler

import (
	"errors"
	"net/http"

	"agroapi/internal/dto"
	"agroapi/internal/entity"
	"agroapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TalhaoHandler struct {
	Service  *service.TalhaoService
	Validate *validator.Validate
}

func NewTalhaoHandler(svc *service.TalhaoService, validate *validator.Validate) *TalhaoHandler {
	return &TalhaoHandler{Service: svc, Validate: validate}
}

func (h *TalhaoHandler) Create(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}

	var req dto.CreateTalhaoRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	propriedadeID, err := uuid.Parse(req.PropriedadeID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("propriedadeId inválido"))
	}

	input := service.CreateTalhaoInput{
		PropriedadeID: propriedadeID,
		Codigo:        req.Codigo,
		Nome:          req.Nome,
		Geojson:       []byte(req.Geojson),
		AreaHectares:  req.AreaHectares,
		Variedade:     req.Variedade,
		Safra:         req.Safra,
	}
	if req.Status != nil {
		status := entity.TalhaoStatus(*req.Status)
		input.Status = &status
	}

	talhao, err := h.Service.Create(c.Request().Context(), input, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.TalhaoResponseFromEntity(talhao))
}

func (h *TalhaoHandler) List(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}

	var propriedadeID *uuid.UUID
	if raw := c.QueryParam("propriedadeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("propriedadeId inválido"))
		}
		propriedadeID = &id
	}

	talhoes, err := h.Service.FindAll(c.Request().Context(), clienteID, propriedadeID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TalhaoResponsesFromEntities(talhoes))
}

func (h *TalhaoHandler) Get(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("id inválido"))
	}
	talhao, err := h.Service.FindByID(c.Request().Context(), id, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TalhaoResponseFromEntity(talhao))
}

func (h *TalhaoHandler) Update(c echo.Context) error {
	clienteID, err := clienteIDFromRequest(c)
	if err != nil {
		return writeError(c, http.StatusForbidden, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("id inválido"))
	}

	var req dto.UpdateTalhaoRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	input := service.UpdateTalhaoInput{
		Codigo:       req.Codigo,
		Nome:         req.Nome,
		Geojson:      []byte(req.Geojson),
		AreaHectares: req.AreaHectares,
		Variedade:    req.Variedade,
		Safra:        req.Safra,
	}
	if req.PropriedadeID != nil {
		propriedadeID, err := uuid.Parse(*req.PropriedadeID)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("propriedadeId inválido"))
		}
		input.PropriedadeID = &propriedadeID
	}
	if req.Status != nil {
		status := entity.TalhaoStatus(*req.Status)
		input.Status = &status
	}

	talhao, err := h.Service.Update(c.Request().Context(), id, input, clienteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TalhaoResponseFromEntity(talhao))
}

func (h *TalhaoHandler) Delete(c echo.Context) error {
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
