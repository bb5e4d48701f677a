package service

import (
	"context"
	"encoding/json"
	"errors"

	"agroapi/internal/entity"
	"agroapi/internal/repository"
	"agroapi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reconciler keeps the local user directory consistent with whatever
// identity source authenticated the request. It runs on every successful
// login, registration, refresh and password reset, and is the only writer
// of provider-derived state on the user row.
type Reconciler struct {
	users repository.UsuarioRepository
}

func NewReconciler(users repository.UsuarioRepository) *Reconciler {
	return &Reconciler{users: users}
}

// Reconcile resolves a remote identity assertion to exactly one local row.
//
// Lookup is by subject id first; a hit only corrects status drift between
// ativo and pendente. A miss falls back to the normalized email: an existing
// row there is adopted and its primary key migrated onto the remote subject
// id, otherwise a new row is created with field precedence remote metadata,
// then hints, then defaults.
//
// Status bloqueado is locally authoritative and never overwritten by the
// provider's confirmation state.
func (r *Reconciler) Reconcile(ctx context.Context, remote RemoteIdentity, hints *RegisterHints) (*entity.Usuario, error) {
	if remote.Email == "" {
		return nil, ErrRemoteUserWithoutEmail
	}
	return r.reconcile(ctx, remote, hints, true)
}

func (r *Reconciler) reconcile(ctx context.Context, remote RemoteIdentity, hints *RegisterHints, retryOnConflict bool) (*entity.Usuario, error) {
	existing, err := r.users.FindByID(ctx, remote.ID)
	if err != nil {
		return nil, err
	}
	derived := derivedStatus(remote.Confirmed)

	if existing != nil {
		if existing.Status == entity.UsuarioStatusBloqueado || existing.Status == derived {
			return existing, nil
		}
		return r.users.Update(ctx, existing.ID, map[string]any{"status": derived})
	}

	email := utils.NormalizeEmail(remote.Email)
	byEmail, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if byEmail != nil {
		return r.adopt(ctx, byEmail, remote, hints, email, derived)
	}

	usuario, err := r.buildUsuario(remote, hints, email, derived)
	if err != nil {
		return nil, err
	}
	if err := r.users.Create(ctx, usuario); err != nil {
		// A concurrent reconciliation won the insert race. The unique
		// constraints are the backstop; treat the loss as "row now
		// exists" and resolve against it.
		if errors.Is(err, gorm.ErrDuplicatedKey) && retryOnConflict {
			return r.reconcile(ctx, remote, hints, false)
		}
		return nil, err
	}
	return usuario, nil
}

// adopt merges the remote assertion into a row that was keyed differently,
// rewriting its primary key to the remote subject id so id and email never
// disagree about which row represents the identity.
func (r *Reconciler) adopt(ctx context.Context, local *entity.Usuario, remote RemoteIdentity, hints *RegisterHints, email string, derived entity.UsuarioStatus) (*entity.Usuario, error) {
	status := derived
	if local.Status == entity.UsuarioStatusBloqueado {
		status = entity.UsuarioStatusBloqueado
	}

	// Adoption merges: the assertion (or hints) only overrides what it
	// actually carries, everything else on the local row survives.
	fields := map[string]any{
		"id":     remote.ID,
		"email":  email,
		"status": status,
	}
	if nome := metadataString(remote.Metadata, "nome"); nome != "" {
		fields["nome"] = nome
	} else if hints != nil && hints.Nome != "" && local.Nome == "" {
		fields["nome"] = hints.Nome
	}
	if role := entity.UsuarioRole(metadataString(remote.Metadata, "role")); role.Valid() {
		fields["role"] = role
	}
	if clienteID := resolveClienteID(remote, hints); clienteID != nil {
		fields["cliente_id"] = clienteID
	}
	if remote.PasswordHash != nil {
		fields["password_hash"] = *remote.PasswordHash
	}
	if metadata := marshalMetadata(remote.Metadata); metadata != nil {
		fields["metadata"] = metadata
	}
	return r.users.Update(ctx, local.ID, fields)
}

func (r *Reconciler) buildUsuario(remote RemoteIdentity, hints *RegisterHints, email string, derived entity.UsuarioStatus) (*entity.Usuario, error) {
	usuario := &entity.Usuario{
		ID:           remote.ID,
		Nome:         resolveNome(remote, hints, email),
		Email:        email,
		Role:         resolveRole(remote, hints),
		Status:       derived,
		ClienteID:    resolveClienteID(remote, hints),
		PasswordHash: remote.PasswordHash,
		Metadata:     marshalMetadata(remote.Metadata),
	}
	return usuario, nil
}

// EnsureActive gates session issuance: only ativo users authenticate into
// protected resources.
func (r *Reconciler) EnsureActive(usuario *entity.Usuario) error {
	if usuario == nil || usuario.Status != entity.UsuarioStatusAtivo {
		return ErrUserInactive
	}
	return nil
}

func derivedStatus(confirmed bool) entity.UsuarioStatus {
	if confirmed {
		return entity.UsuarioStatusAtivo
	}
	return entity.UsuarioStatusPendente
}

func resolveNome(remote RemoteIdentity, hints *RegisterHints, email string) string {
	if nome := metadataString(remote.Metadata, "nome"); nome != "" {
		return nome
	}
	if hints != nil && hints.Nome != "" {
		return hints.Nome
	}
	return utils.EmailLocalPart(email)
}

func resolveRole(remote RemoteIdentity, hints *RegisterHints) entity.UsuarioRole {
	if role := entity.UsuarioRole(metadataString(remote.Metadata, "role")); role.Valid() {
		return role
	}
	if hints != nil && hints.Role.Valid() {
		return hints.Role
	}
	return entity.UsuarioRoleCliente
}

func resolveClienteID(remote RemoteIdentity, hints *RegisterHints) *uuid.UUID {
	if raw := metadataString(remote.Metadata, "clienteId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	if hints != nil && hints.ClienteID != nil {
		return hints.ClienteID
	}
	return nil
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return ""
}

func marshalMetadata(metadata map[string]any) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
