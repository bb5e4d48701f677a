package repository

import (
	"context"
	"errors"

	"agroapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TalhaoRepository interface {
	Create(ctx context.Context, talhao *entity.Talhao) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Talhao, error)
	FindByIDWithPropriedade(ctx context.Context, id uuid.UUID) (*entity.Talhao, error)
	FindAllByPropriedadeID(ctx context.Context, propriedadeID uuid.UUID) ([]entity.Talhao, error)
	Update(ctx context.Context, talhao *entity.Talhao) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type talhaoRepository struct {
	db *gorm.DB
}

func NewTalhaoRepository(db *gorm.DB) TalhaoRepository {
	return &talhaoRepository{db: db}
}

func (r *talhaoRepository) Create(ctx context.Context, talhao *entity.Talhao) error {
	return r.db.WithContext(ctx).Create(talhao).Error
}

func (r *talhaoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Talhao, error) {
	var talhao entity.Talhao
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&talhao).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &talhao, nil
}

func (r *talhaoRepository) FindByIDWithPropriedade(ctx context.Context, id uuid.UUID) (*entity.Talhao, error) {
	var talhao entity.Talhao
	err := r.db.WithContext(ctx).Preload("Propriedade").Where("id = ?", id).First(&talhao).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &talhao, nil
}

func (r *talhaoRepository) FindAllByPropriedadeID(ctx context.Context, propriedadeID uuid.UUID) ([]entity.Talhao, error) {
	var talhoes []entity.Talhao
	err := r.db.WithContext(ctx).
		Omit("geojson").
		Where("propriedade_id = ?", propriedadeID).
		Order("codigo ASC").
		Find(&talhoes).Error
	if err != nil {
		return nil, err
	}
	return talhoes, nil
}

func (r *talhaoRepository) Update(ctx context.Context, talhao *entity.Talhao) error {
	return r.db.WithContext(ctx).Omit("Propriedade").Save(talhao).Error
}

func (r *talhaoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Talhao{}, "id = ?", id).Error
}
