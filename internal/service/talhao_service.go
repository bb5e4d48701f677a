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
	ErrTalhaoNotFound         = errors.New("talhão não encontrado")
	ErrTalhaoDuplicado        = errors.New("já existe um talhão com este código para a propriedade")
	ErrPropriedadeObrigatoria = errors.New("o id da propriedade é obrigatório para listar os talhões")
)

type CreateTalhaoInput struct {
	PropriedadeID uuid.UUID
	Codigo        string
	Nome          *string
	Geojson       datatypes.JSON
	AreaHectares  *float64
	Variedade     *string
	Safra         *string
	Status        *entity.TalhaoStatus
}

type UpdateTalhaoInput struct {
	PropriedadeID *uuid.UUID
	Codigo        *string
	Nome          *string
	Geojson       datatypes.JSON
	AreaHectares  *float64
	Variedade     *string
	Safra         *string
	Status        *entity.TalhaoStatus
}

type TalhaoService struct {
	talhoes      repository.TalhaoRepository
	propriedades repository.PropriedadeRepository
}

func NewTalhaoService(talhoes repository.TalhaoRepository, propriedades repository.PropriedadeRepository) *TalhaoService {
	return &TalhaoService{talhoes: talhoes, propriedades: propriedades}
}

// ensureOwnership rejects talhão operations against a propriedade that does
// not belong to the caller's cliente.
func (s *TalhaoService) ensureOwnership(ctx context.Context, propriedadeID uuid.UUID, clienteID uuid.UUID) error {
	propriedade, err := s.propriedades.FindByID(ctx, propriedadeID)
	if err != nil {
		return err
	}
	if propriedade == nil || propriedade.ClienteID != clienteID {
		return ErrPropriedadeNotFound
	}
	return nil
}

func (s *TalhaoService) Create(ctx context.Context, input CreateTalhaoInput, clienteID uuid.UUID) (*entity.Talhao, error) {
	if err := s.ensureOwnership(ctx, input.PropriedadeID, clienteID); err != nil {
		return nil, err
	}

	talhao := &entity.Talhao{
		PropriedadeID: input.PropriedadeID,
		Codigo:        input.Codigo,
		Nome:          input.Nome,
		Geojson:       input.Geojson,
		AreaHectares:  input.AreaHectares,
		Variedade:     input.Variedade,
		Safra:         input.Safra,
		Status:        entity.TalhaoStatusAtivo,
	}
	if input.Status != nil {
		talhao.Status = *input.Status
	}

	if err := s.talhoes.Create(ctx, talhao); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTalhaoDuplicado
		}
		return nil, err
	}
	return talhao, nil
}

func (s *TalhaoService) FindAll(ctx context.Context, clienteID uuid.UUID, propriedadeID *uuid.UUID) ([]entity.Talhao, error) {
	// Listing every talhão of a cliente across properties would be
	// unbounded; the propriedade filter is required.
	if propriedadeID == nil {
		return nil, ErrPropriedadeObrigatoria
	}
	if err := s.ensureOwnership(ctx, *propriedadeID, clienteID); err != nil {
		return nil, err
	}
	return s.talhoes.FindAllByPropriedadeID(ctx, *propriedadeID)
}

func (s *TalhaoService) FindByID(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) (*entity.Talhao, error) {
	talhao, err := s.talhoes.FindByIDWithPropriedade(ctx, id)
	if err != nil {
		return nil, err
	}
	if talhao == nil || talhao.Propriedade.ClienteID != clienteID {
		return nil, ErrTalhaoNotFound
	}
	return talhao, nil
}

func (s *TalhaoService) Update(ctx context.Context, id uuid.UUID, input UpdateTalhaoInput, clienteID uuid.UUID) (*entity.Talhao, error) {
	talhao, err := s.FindByID(ctx, id, clienteID)
	if err != nil {
		return nil, err
	}

	if input.PropriedadeID != nil {
		if err := s.ensureOwnership(ctx, *input.PropriedadeID, clienteID); err != nil {
			return nil, err
		}
		talhao.PropriedadeID = *input.PropriedadeID
	}
	if input.Codigo != nil {
		talhao.Codigo = *input.Codigo
	}
	if input.Nome != nil {
		talhao.Nome = input.Nome
	}
	if input.Geojson != nil {
		talhao.Geojson = input.Geojson
	}
	if input.AreaHectares != nil {
		talhao.AreaHectares = input.AreaHectares
	}
	if input.Variedade != nil {
		talhao.Variedade = input.Variedade
	}
	if input.Safra != nil {
		talhao.Safra = input.Safra
	}
	if input.Status != nil {
		talhao.Status = *input.Status
	}

	if err := s.talhoes.Update(ctx, talhao); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTalhaoDuplicado
		}
		return nil, err
	}
	return talhao, nil
}

func (s *TalhaoService) Delete(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) error {
	if _, err := s.FindByID(ctx, id, clienteID); err != nil {
		return err
	}
	return s.talhoes.Delete(ctx, id)
}
