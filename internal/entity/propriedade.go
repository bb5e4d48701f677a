package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Propriedade struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClienteID        uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_propriedade_codigo"`
	Nome             string         `gorm:"type:varchar(150);not null"`
	CodigoInterno    string         `gorm:"type:varchar(60);not null;uniqueIndex:idx_propriedade_codigo"`
	CodigoSicar      *string        `gorm:"type:varchar(60);uniqueIndex"`
	Geojson          datatypes.JSON
	AreaHectares     *float64
	CulturaPrincipal *string        `gorm:"type:varchar(80)"`
	SafraAtual       *string        `gorm:"type:varchar(40)"`

	Talhoes []Talhao

	CreatedAt time.Time
	UpdatedAt time.Time
}
