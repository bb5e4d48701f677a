package service

import (
	"context"
	"testing"

	"agroapi/internal/entity"
	"agroapi/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUsuario(t *testing.T, repo *fakeUsuarioRepo, usuario entity.Usuario) entity.Usuario {
	t.Helper()
	if usuario.ID == uuid.Nil {
		usuario.ID = uuid.New()
	}
	require.NoError(t, repo.Create(context.Background(), &usuario))
	return usuario
}

func TestReconcileRejectsIdentityWithoutEmail(t *testing.T) {
	reconciler := NewReconciler(newFakeUsuarioRepo())

	_, err := reconciler.Reconcile(context.Background(), RemoteIdentity{ID: uuid.New()}, nil)
	assert.ErrorIs(t, err, ErrRemoteUserWithoutEmail)
}

func TestReconcileCreatesRowWithDefaults(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)
	remoteID := uuid.New()

	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        remoteID,
		Email:     "Carlos@Fazenda.com",
		Confirmed: true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, remoteID, usuario.ID)
	assert.Equal(t, "carlos@fazenda.com", usuario.Email)
	assert.Equal(t, "Carlos", usuario.Nome)
	assert.Equal(t, entity.UsuarioRoleCliente, usuario.Role)
	assert.Equal(t, entity.UsuarioStatusAtivo, usuario.Status)
	assert.Nil(t, usuario.ClienteID)
}

func TestReconcileFieldPrecedence(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)
	hintCliente := uuid.New()
	metadataCliente := uuid.New()

	// Remote metadata outranks hints, hints outrank defaults.
	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        uuid.New(),
		Email:     "maria@fazenda.com",
		Confirmed: true,
		Metadata: map[string]any{
			"nome":      "Maria do Metadata",
			"role":      "gestor",
			"clienteId": metadataCliente.String(),
		},
	}, &RegisterHints{
		Nome:      "Maria do Hint",
		Role:      entity.UsuarioRoleAnalista,
		ClienteID: &hintCliente,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria do Metadata", usuario.Nome)
	assert.Equal(t, entity.UsuarioRoleGestor, usuario.Role)
	require.NotNil(t, usuario.ClienteID)
	assert.Equal(t, metadataCliente, *usuario.ClienteID)

	// Hints fill what the metadata does not cover.
	usuario, err = reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        uuid.New(),
		Email:     "joana@fazenda.com",
		Confirmed: true,
		Metadata:  map[string]any{"role": "valor-desconhecido"},
	}, &RegisterHints{
		Nome:      "Joana",
		Role:      entity.UsuarioRoleAnalista,
		ClienteID: &hintCliente,
	})
	require.NoError(t, err)

	assert.Equal(t, "Joana", usuario.Nome)
	assert.Equal(t, entity.UsuarioRoleAnalista, usuario.Role)
	require.NotNil(t, usuario.ClienteID)
	assert.Equal(t, hintCliente, *usuario.ClienteID)
}

func TestReconcileIsIdempotentWithoutDrift(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)

	seeded := seedUsuario(t, repo, entity.Usuario{
		Nome:   "Pedro",
		Email:  "pedro@fazenda.com",
		Role:   entity.UsuarioRoleCliente,
		Status: entity.UsuarioStatusAtivo,
	})
	updatesBefore := repo.updates

	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        seeded.ID,
		Email:     seeded.Email,
		Confirmed: true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, usuario.ID)
	assert.Equal(t, seeded.UpdatedAt, usuario.UpdatedAt)
	assert.Equal(t, updatesBefore, repo.updates, "reconcile without drift must not write")
}

func TestReconcileCorrectsStatusDrift(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)

	seeded := seedUsuario(t, repo, entity.Usuario{
		Nome:   "Rita",
		Email:  "rita@fazenda.com",
		Role:   entity.UsuarioRoleCliente,
		Status: entity.UsuarioStatusPendente,
	})

	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        seeded.ID,
		Email:     seeded.Email,
		Confirmed: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.UsuarioStatusAtivo, usuario.Status)

	usuario, err = reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        seeded.ID,
		Email:     seeded.Email,
		Confirmed: false,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.UsuarioStatusPendente, usuario.Status)
}

func TestReconcileNeverUnblocks(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)

	seeded := seedUsuario(t, repo, entity.Usuario{
		Nome:   "Bruno",
		Email:  "bruno@fazenda.com",
		Role:   entity.UsuarioRoleCliente,
		Status: entity.UsuarioStatusBloqueado,
	})

	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        seeded.ID,
		Email:     seeded.Email,
		Confirmed: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.UsuarioStatusBloqueado, usuario.Status)
}

func TestReconcileAdoptsRowByEmailAndMigratesKey(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)

	localHash := "hash-local"
	seeded := seedUsuario(t, repo, entity.Usuario{
		Nome:         "Equipe Agro",
		Email:        "equipe@fazenda.com",
		Role:         entity.UsuarioRoleGestor,
		Status:       entity.UsuarioStatusPendente,
		PasswordHash: &localHash,
	})

	remoteID := uuid.New()
	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        remoteID,
		Email:     "Equipe@Fazenda.com",
		Confirmed: true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, remoteID, usuario.ID, "adopted row keys onto the remote subject id")
	assert.Equal(t, entity.UsuarioStatusAtivo, usuario.Status)
	assert.Equal(t, entity.UsuarioRoleGestor, usuario.Role, "local role survives adoption without a remote override")
	require.NotNil(t, usuario.PasswordHash)
	assert.Equal(t, localHash, *usuario.PasswordHash, "nil remote hash leaves the column untouched")

	gone, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "old primary key no longer resolves")
}

func TestReconcileAdoptionPreservesBlocked(t *testing.T) {
	repo := newFakeUsuarioRepo()
	reconciler := NewReconciler(repo)

	seedUsuario(t, repo, entity.Usuario{
		Nome:   "Conta Bloqueada",
		Email:  "bloqueada@fazenda.com",
		Role:   entity.UsuarioRoleCliente,
		Status: entity.UsuarioStatusBloqueado,
	})

	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        uuid.New(),
		Email:     "bloqueada@fazenda.com",
		Confirmed: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.UsuarioStatusBloqueado, usuario.Status)
}

// conflictOnFirstCreateRepo simulates losing the insert race once: the
// first Create reports a duplicate key while making the row visible, as a
// concurrent writer would have.
type conflictOnFirstCreateRepo struct {
	repository.UsuarioRepository
	inner     *fakeUsuarioRepo
	conflicts int
}

func (r *conflictOnFirstCreateRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	if r.conflicts == 0 {
		r.conflicts++
		clone := *usuario
		clone.Nome = "Vencedor da Corrida"
		if err := r.inner.Create(ctx, &clone); err != nil {
			return err
		}
		return gorm.ErrDuplicatedKey
	}
	return r.inner.Create(ctx, usuario)
}

func TestReconcileRetriesOnInsertConflict(t *testing.T) {
	inner := newFakeUsuarioRepo()
	repo := &conflictOnFirstCreateRepo{UsuarioRepository: inner, inner: inner}
	reconciler := NewReconciler(repo)

	remoteID := uuid.New()
	usuario, err := reconciler.Reconcile(context.Background(), RemoteIdentity{
		ID:        remoteID,
		Email:     "corrida@fazenda.com",
		Confirmed: true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, remoteID, usuario.ID)
	assert.Equal(t, "Vencedor da Corrida", usuario.Nome, "retry resolves against the row the winner inserted")
	assert.Equal(t, 1, repo.conflicts)
}

func TestEnsureActive(t *testing.T) {
	reconciler := NewReconciler(newFakeUsuarioRepo())

	assert.NoError(t, reconciler.EnsureActive(&entity.Usuario{Status: entity.UsuarioStatusAtivo}))
	assert.ErrorIs(t, reconciler.EnsureActive(&entity.Usuario{Status: entity.UsuarioStatusPendente}), ErrUserInactive)
	assert.ErrorIs(t, reconciler.EnsureActive(&entity.Usuario{Status: entity.UsuarioStatusBloqueado}), ErrUserInactive)
	assert.ErrorIs(t, reconciler.EnsureActive(nil), ErrUserInactive)
}
