package service

import (
	"context"
	"sync"
	"time"

	"agroapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeUsuarioRepo mimics the postgres-backed repository in memory,
// including the unique indexes on id and email and the primary-key rewrite
// that Update supports.
type fakeUsuarioRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*entity.Usuario
	creates int
	updates int
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{rows: map[uuid.UUID]*entity.Usuario{}}
}

func (r *fakeUsuarioRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.rows[usuario.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, row := range r.rows {
		if row.Email == usuario.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	usuario.CreatedAt = time.Now()
	usuario.UpdatedAt = usuario.CreatedAt
	clone := *usuario
	r.rows[usuario.ID] = &clone
	return nil
}

func (r *fakeUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; ok {
		clone := *row
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	for key, value := range fields {
		switch key {
		case "id":
			newID := value.(uuid.UUID)
			delete(r.rows, row.ID)
			row.ID = newID
			r.rows[newID] = row
		case "nome":
			row.Nome = value.(string)
		case "email":
			row.Email = value.(string)
		case "role":
			row.Role = value.(entity.UsuarioRole)
		case "status":
			row.Status = value.(entity.UsuarioStatus)
		case "cliente_id":
			if value == nil {
				row.ClienteID = nil
			} else if clienteID, ok := value.(*uuid.UUID); ok {
				row.ClienteID = clienteID
			}
		case "password_hash":
			if value == nil {
				row.PasswordHash = nil
			} else {
				hash := value.(string)
				row.PasswordHash = &hash
			}
		case "metadata":
			if value == nil {
				row.Metadata = nil
			} else {
				row.Metadata = value.(datatypes.JSON)
			}
		case "reset_token_hash":
			if value == nil {
				row.ResetTokenHash = nil
			} else {
				hash := value.(string)
				row.ResetTokenHash = &hash
			}
		case "reset_token_expires_at":
			if value == nil {
				row.ResetTokenExpiresAt = nil
			} else {
				expiresAt := value.(time.Time)
				row.ResetTokenExpiresAt = &expiresAt
			}
		}
	}
	row.UpdatedAt = time.Now()
	clone := *row
	return &clone, nil
}

type fakeAuditoriaRepo struct {
	mu        sync.Mutex
	registros []entity.RegistroAuditoria
}

func (r *fakeAuditoriaRepo) Log(ctx context.Context, registro *entity.RegistroAuditoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registros = append(r.registros, *registro)
	return nil
}

func (r *fakeAuditoriaRepo) FindRecent(ctx context.Context, limit int) ([]entity.RegistroAuditoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	registros := make([]entity.RegistroAuditoria, 0, len(r.registros))
	for i := len(r.registros) - 1; i >= 0 && len(registros) < limit; i-- {
		registros = append(registros, r.registros[i])
	}
	return registros, nil
}

func (r *fakeAuditoriaRepo) acoes() []entity.AuditoriaAcao {
	r.mu.Lock()
	defer r.mu.Unlock()
	acoes := make([]entity.AuditoriaAcao, 0, len(r.registros))
	for _, registro := range r.registros {
		acoes = append(acoes, registro.Acao)
	}
	return acoes
}

type capturedEmail struct {
	Email string
	Token string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []capturedEmail
	err  error
}

func (s *fakeEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, capturedEmail{Email: email, Token: token})
	return nil
}

func (s *fakeEmailSender) last() *capturedEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	last := s.sent[len(s.sent)-1]
	return &last
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
