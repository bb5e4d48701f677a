package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditoriaAcao string

const (
	AuditoriaLoginSucesso  AuditoriaAcao = "login_sucesso"
	AuditoriaLoginFalha    AuditoriaAcao = "login_falha"
	AuditoriaLogout        AuditoriaAcao = "logout"
	AuditoriaResetSenha    AuditoriaAcao = "reset_senha"
	AuditoriaRegistro      AuditoriaAcao = "registro"
	AuditoriaReconciliacao AuditoriaAcao = "reconciliacao"
)

// RegistroAuditoria records authentication events. Writes are best-effort;
// a failed insert never fails the request that produced it.
type RegistroAuditoria struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	Usuario   *Usuario   `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string       `gorm:"type:varchar(45)"`
	Acao      AuditoriaAcao `gorm:"type:varchar(30);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
