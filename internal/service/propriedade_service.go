package service

import (
	"context"
	"errors"

	"agroapi/internal/entity"
	"agroapi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPropriedadeNotFound  = errors.New("propriedade não encontrada")
	ErrPropriedadeDuplicada = errors.New("já existe uma propriedade com este código interno para o cliente ou com o mesmo código CAR")
)

type CreatePropriedadeInput struct {
	Nome             string
	CodigoInterno    string
	CodigoSicar      *string
	Geojson          datatypes.JSON
	AreaHectares     *float64
	CulturaPrincipal *string
	SafraAtual       *string
}

type UpdatePropriedadeInput struct {
	Nome             *string
	CodigoInterno    *string
	CodigoSicar      *string
	Geojson          datatypes.JSON
	AreaHectares     *float64
	CulturaPrincipal *string
	SafraAtual       *string
}

// PropriedadeService is plain CRUD scoped to the caller's cliente; every
// read and write checks ownership before touching the row.
type PropriedadeService struct {
	propriedades repository.PropriedadeRepository
}

func NewPropriedadeService(propriedades repository.PropriedadeRepository) *PropriedadeService {
	return &PropriedadeService{propriedades: propriedades}
}

func (s *PropriedadeService) Create(ctx context.Context, input CreatePropriedadeInput, clienteID uuid.UUID) (*entity.Propriedade, error) {
	propriedade := &entity.Propriedade{
		ClienteID:        clienteID,
		Nome:             input.Nome,
		CodigoInterno:    input.CodigoInterno,
		CodigoSicar:      input.CodigoSicar,
		Geojson:          input.Geojson,
		AreaHectares:     input.AreaHectares,
		CulturaPrincipal: input.CulturaPrincipal,
		SafraAtual:       input.SafraAtual,
	}
	if err := s.propriedades.Create(ctx, propriedade); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPropriedadeDuplicada
		}
		return nil, err
	}
	return propriedade, nil
}

func (s *PropriedadeService) FindAll(ctx context.Context, clienteID uuid.UUID) ([]entity.Propriedade, error) {
	return s.propriedades.FindAllByClienteID(ctx, clienteID)
}

func (s *PropriedadeService) FindByID(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) (*entity.Propriedade, error) {
	propriedade, err := s.propriedades.FindByIDWithTalhoes(ctx, id)
	if err != nil {
		return nil, err
	}
	if propriedade == nil || propriedade.ClienteID != clienteID {
		return nil, ErrPropriedadeNotFound
	}
	return propriedade, nil
}

func (s *PropriedadeService) Update(ctx context.Context, id uuid.UUID, input UpdatePropriedadeInput, clienteID uuid.UUID) (*entity.Propriedade, error) {
	propriedade, err := s.propriedades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if propriedade == nil || propriedade.ClienteID != clienteID {
		return nil, ErrPropriedadeNotFound
	}

	if input.Nome != nil {
		propriedade.Nome = *input.Nome
	}
	if input.CodigoInterno != nil {
		propriedade.CodigoInterno = *input.CodigoInterno
	}
	if input.CodigoSicar != nil {
		propriedade.CodigoSicar = input.CodigoSicar
	}
	if input.Geojson != nil {
		propriedade.Geojson = input.Geojson
	}
	if input.AreaHectares != nil {
		propriedade.AreaHectares = input.AreaHectares
	}
	if input.CulturaPrincipal != nil {
		propriedade.CulturaPrincipal = input.CulturaPrincipal
	}
	if input.SafraAtual != nil {
		propriedade.SafraAtual = input.SafraAtual
	}

	if err := s.propriedades.Update(ctx, propriedade); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPropriedadeDuplicada
		}
		return nil, err
	}
	return propriedade, nil
}

func (s *PropriedadeService) Delete(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) error {
	propriedade, err := s.propriedades.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if propriedade == nil || propriedade.ClienteID != clienteID {
		return ErrPropriedadeNotFound
	}
	return s.propriedades.Delete(ctx, id)
}
