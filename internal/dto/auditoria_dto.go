package dto

import (
	"encoding/json"
	"time"

	"agroapi/internal/entity"
)

type AuditoriaResponse struct {
	ID        string          `json:"id"`
	UsuarioID *string         `json:"usuarioId"`
	IPAddress *string         `json:"ipAddress"`
	Acao      string          `json:"acao"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func AuditoriaResponseFromEntity(registro *entity.RegistroAuditoria) AuditoriaResponse {
	response := AuditoriaResponse{
		ID:        registro.ID.String(),
		IPAddress: registro.IPAddress,
		Acao:      string(registro.Acao),
		Metadata:  json.RawMessage(registro.Metadata),
		CreatedAt: registro.CreatedAt,
	}
	if registro.UsuarioID != nil {
		usuarioID := registro.UsuarioID.String()
		response.UsuarioID = &usuarioID
	}
	return response
}
