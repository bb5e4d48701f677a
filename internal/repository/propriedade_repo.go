package repository

import (
	"context"
	"errors"

	"agroapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropriedadeRepository interface {
	Create(ctx context.Context, propriedade *entity.Propriedade) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Propriedade, error)
	FindByIDWithTalhoes(ctx context.Context, id uuid.UUID) (*entity.Propriedade, error)
	FindAllByClienteID(ctx context.Context, clienteID uuid.UUID) ([]entity.Propriedade, error)
	Update(ctx context.Context, propriedade *entity.Propriedade) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type propriedadeRepository struct {
	db *gorm.DB
}

func NewPropriedadeRepository(db *gorm.DB) PropriedadeRepository {
	return &propriedadeRepository{db: db}
}

func (r *propriedadeRepository) Create(ctx context.Context, propriedade *entity.Propriedade) error {
	return r.db.WithContext(ctx).Create(propriedade).Error
}

func (r *propriedadeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Propriedade, error) {
	var propriedade entity.Propriedade
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&propriedade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &propriedade, nil
}

func (r *propriedadeRepository) FindByIDWithTalhoes(ctx context.Context, id uuid.UUID) (*entity.Propriedade, error) {
	var propriedade entity.Propriedade
	err := r.db.WithContext(ctx).Preload("Talhoes").Where("id = ?", id).First(&propriedade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &propriedade, nil
}

func (r *propriedadeRepository) FindAllByClienteID(ctx context.Context, clienteID uuid.UUID) ([]entity.Propriedade, error) {
	var propriedades []entity.Propriedade
	err := r.db.WithContext(ctx).
		Omit("geojson").
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&propriedades).Error
	if err != nil {
		return nil, err
	}
	return propriedades, nil
}

func (r *propriedadeRepository) Update(ctx context.Context, propriedade *entity.Propriedade) error {
	return r.db.WithContext(ctx).Omit("Talhoes").Save(propriedade).Error
}

func (r *propriedadeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Propriedade{}, "id = ?", id).Error
}
