package dto

import (
	"encoding/json"
	"time"

	"agroapi/internal/entity"
)

type CreatePropriedadeRequest struct {
	Nome             string          `json:"nome" validate:"required,min=2,max=150"`
	CodigoInterno    string          `json:"codigoInterno" validate:"required,min=1,max=60"`
	CodigoSicar      *string         `json:"codigoSicar" validate:"omitempty,max=60"`
	Geojson          json.RawMessage `json:"geojson" validate:"omitempty"`
	AreaHectares     *float64        `json:"areaHectares" validate:"omitempty,gt=0"`
	CulturaPrincipal *string         `json:"culturaPrincipal" validate:"omitempty,max=80"`
	SafraAtual       *string         `json:"safraAtual" validate:"omitempty,max=40"`
}

type UpdatePropriedadeRequest struct {
	Nome             *string         `json:"nome" validate:"omitempty,min=2,max=150"`
	CodigoInterno    *string         `json:"codigoInterno" validate:"omitempty,min=1,max=60"`
	CodigoSicar      *string         `json:"codigoSicar" validate:"omitempty,max=60"`
	Geojson          json.RawMessage `json:"geojson" validate:"omitempty"`
	AreaHectares     *float64        `json:"areaHectares" validate:"omitempty,gt=0"`
	CulturaPrincipal *string         `json:"culturaPrincipal" validate:"omitempty,max=80"`
	SafraAtual       *string         `json:"safraAtual" validate:"omitempty,max=40"`
}

type PropriedadeResponse struct {
	ID               string           `json:"id"`
	ClienteID        string           `json:"clienteId"`
	Nome             string           `json:"nome"`
	CodigoInterno    string           `json:"codigoInterno"`
	CodigoSicar      *string          `json:"codigoSicar"`
	Geojson          json.RawMessage  `json:"geojson,omitempty"`
	AreaHectares     *float64         `json:"areaHectares"`
	CulturaPrincipal *string          `json:"culturaPrincipal"`
	SafraAtual       *string          `json:"safraAtual"`
	Talhoes          []TalhaoResponse `json:"talhoes,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func PropriedadeResponseFromEntity(propriedade *entity.Propriedade) PropriedadeResponse {
	response := PropriedadeResponse{
		ID:               propriedade.ID.String(),
		ClienteID:        propriedade.ClienteID.String(),
		Nome:             propriedade.Nome,
		CodigoInterno:    propriedade.CodigoInterno,
		CodigoSicar:      propriedade.CodigoSicar,
		Geojson:          json.RawMessage(propriedade.Geojson),
		AreaHectares:     propriedade.AreaHectares,
		CulturaPrincipal: propriedade.CulturaPrincipal,
		SafraAtual:       propriedade.SafraAtual,
		CreatedAt:        propriedade.CreatedAt,
		UpdatedAt:        propriedade.UpdatedAt,
	}
	for i := range propriedade.Talhoes {
		response.Talhoes = append(response.Talhoes, TalhaoResponseFromEntity(&propriedade.Talhoes[i]))
	}
	return response
}

func PropriedadeResponsesFromEntities(propriedades []entity.Propriedade) []PropriedadeResponse {
	responses := make([]PropriedadeResponse, 0, len(propriedades))
	for i := range propriedades {
		responses = append(responses, PropriedadeResponseFromEntity(&propriedades[i]))
	}
	return responses
}
