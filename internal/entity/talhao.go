package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TalhaoStatus string

const (
	TalhaoStatusAtivo   TalhaoStatus = "ativo"
	TalhaoStatusInativo TalhaoStatus = "inativo"
)

type Talhao struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropriedadeID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_talhao_codigo"`
	Propriedade   Propriedade `gorm:"constraint:OnDelete:CASCADE"`

	Codigo       string       `gorm:"type:varchar(60);not null;uniqueIndex:idx_talhao_codigo"`
	Nome         *string      `gorm:"type:varchar(150)"`
	Geojson      datatypes.JSON
	AreaHectares *float64
	Variedade    *string      `gorm:"type:varchar(80)"`
	Safra        *string      `gorm:"type:varchar(40)"`
	Status       TalhaoStatus `gorm:"type:varchar(20);default:'ativo';not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
