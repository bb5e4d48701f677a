package dto

import (
	"encoding/json"
	"time"

	"agroapi/internal/entity"
)

type CreateTalhaoRequest struct {
	PropriedadeID string          `json:"propriedadeId" validate:"required,uuid"`
	Codigo        string          `json:"codigo" validate:"required,min=1,max=60"`
	Nome          *string         `json:"nome" validate:"omitempty,max=150"`
	Geojson       json.RawMessage `json:"geojson" validate:"omitempty"`
	AreaHectares  *float64        `json:"areaHectares" validate:"omitempty,gt=0"`
	Variedade     *string         `json:"variedade" validate:"omitempty,max=80"`
	Safra         *string         `json:"safra" validate:"omitempty,max=40"`
	Status        *string         `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

type UpdateTalhaoRequest struct {
	PropriedadeID *string         `json:"propriedadeId" validate:"omitempty,uuid"`
	Codigo        *string         `json:"codigo" validate:"omitempty,min=1,max=60"`
	Nome          *string         `json:"nome" validate:"omitempty,max=150"`
	Geojson       json.RawMessage `json:"geojson" validate:"omitempty"`
	AreaHectares  *float64        `json:"areaHectares" validate:"omitempty,gt=0"`
	Variedade     *string         `json:"variedade" validate:"omitempty,max=80"`
	Safra         *string         `json:"safra" validate:"omitempty,max=40"`
	Status        *string         `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

type TalhaoResponse struct {
	ID            string          `json:"id"`
	PropriedadeID string          `json:"propriedadeId"`
	Codigo        string          `json:"codigo"`
	Nome          *string         `json:"nome"`
	Geojson       json.RawMessage `json:"geojson,omitempty"`
	AreaHectares  *float64        `json:"areaHectares"`
	Variedade     *string         `json:"variedade"`
	Safra         *string         `json:"safra"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func TalhaoResponseFromEntity(talhao *entity.Talhao) TalhaoResponse {
	return TalhaoResponse{
		ID:            talhao.ID.String(),
		PropriedadeID: talhao.PropriedadeID.String(),
		Codigo:        talhao.Codigo,
		Nome:          talhao.Nome,
		Geojson:       json.RawMessage(talhao.Geojson),
		AreaHectares:  talhao.AreaHectares,
		Variedade:     talhao.Variedade,
		Safra:         talhao.Safra,
		Status:        string(talhao.Status),
		CreatedAt:     talhao.CreatedAt,
		UpdatedAt:     talhao.UpdatedAt,
	}
}

func TalhaoResponsesFromEntities(talhoes []entity.Talhao) []TalhaoResponse {
	responses := make([]TalhaoResponse, 0, len(talhoes))
	for i := range talhoes {
		responses = append(responses, TalhaoResponseFromEntity(&talhoes[i]))
	}
	return responses
}
