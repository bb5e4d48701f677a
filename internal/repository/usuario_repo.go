package repository

import (
	"context"
	"errors"

	"agroapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository is the single authority over local user persistence.
// Lookups return (nil, nil) when no row matches; callers normalize email
// before calling.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Usuario, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *entity.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Usuario, error) {
	var usuario entity.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&usuario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	var usuario entity.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Update applies only the supplied fields. The primary key itself may be
// rewritten (identity reconciliation migrates adopted rows onto the
// provider's subject id); the reload follows the new key when it does.
func (r *usuarioRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Usuario, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	result := r.db.WithContext(ctx).
		Model(&entity.Usuario{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	reloadID := id
	if newID, ok := fields["id"].(uuid.UUID); ok {
		reloadID = newID
	}
	return r.FindByID(ctx, reloadID)
}
