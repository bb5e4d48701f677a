package repository

import (
	"context"

	"agroapi/internal/entity"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Log(ctx context.Context, registro *entity.RegistroAuditoria) error
	FindRecent(ctx context.Context, limit int) ([]entity.RegistroAuditoria, error)
}

type auditoriaRepository struct {
	db *gorm.DB
}

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository {
	return &auditoriaRepository{db: db}
}

func (r *auditoriaRepository) Log(ctx context.Context, registro *entity.RegistroAuditoria) error {
	return r.db.WithContext(ctx).Create(registro).Error
}

func (r *auditoriaRepository) FindRecent(ctx context.Context, limit int) ([]entity.RegistroAuditoria, error) {
	var registros []entity.RegistroAuditoria
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&registros).Error
	if err != nil {
		return nil, err
	}
	return registros, nil
}
