package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UsuarioRole string

const (
	UsuarioRoleAdmin    UsuarioRole = "admin"
	UsuarioRoleGestor   UsuarioRole = "gestor"
	UsuarioRoleAnalista UsuarioRole = "analista"
	UsuarioRoleCliente  UsuarioRole = "cliente"
)

func (r UsuarioRole) Valid() bool {
	switch r {
	case UsuarioRoleAdmin, UsuarioRoleGestor, UsuarioRoleAnalista, UsuarioRoleCliente:
		return true
	}
	return false
}

type UsuarioStatus string

const (
	UsuarioStatusAtivo     UsuarioStatus = "ativo"
	UsuarioStatusBloqueado UsuarioStatus = "bloqueado"
	UsuarioStatusPendente  UsuarioStatus = "pendente"
)

// PasswordHash sentinel when credentials live in the identity provider.
const PasswordManagedByProvider = "supabase-managed"

// Usuario is the locally owned user record. When the Supabase backend is
// active its ID equals the provider's subject id.
type Usuario struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Nome         string        `gorm:"type:varchar(150);not null"`
	Email        string        `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string       `gorm:"type:text"`
	Role         UsuarioRole   `gorm:"type:varchar(20);default:'cliente';not null"`
	Status       UsuarioStatus `gorm:"type:varchar(20);default:'pendente';not null"`
	ClienteID    *uuid.UUID    `gorm:"type:uuid;index"`

	ResetTokenHash      *string `gorm:"type:text"`
	ResetTokenExpiresAt *time.Time

	Metadata datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}
