package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lecheria-api/internal/application/auth"
	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Lecheria-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Members(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "lecheria-test"})
}

func TestSignupYLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newAuth(store)

	member, err := uc.Signup(ctx, dto.SignupRequest{Name: " Lakshmi ", AccountNo: "ACC-7", Email: "l@example.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "Lakshmi", member.Name)
	assert.Equal(t, entity.RoleMember, member.Role)

	stored, err := store.Members().GetByAccountNo(ctx, "ACC-7")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto", stored.PasswordHash, "el password nunca se guarda en claro")

	out, err := uc.Login(ctx, dto.LoginRequest{AccountNo: "ACC-7", Password: "secreto"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "ACC-7", out.User.AccountNo)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "ACC-7", claims.AccountNo)
	assert.Equal(t, entity.RoleMember, claims.Role)
}

func TestSignup_Duplicados(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(memory.New())

	_, err := uc.Signup(ctx, dto.SignupRequest{Name: "A", AccountNo: "ACC-1", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = uc.Signup(ctx, dto.SignupRequest{Name: "B", AccountNo: "ACC-1", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Signup(ctx, dto.SignupRequest{Name: "C", AccountNo: "ACC-2", Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignup_CamposRequeridos(t *testing.T) {
	uc := newAuth(memory.New())
	for _, in := range []dto.SignupRequest{
		{AccountNo: "ACC-1", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", AccountNo: "ACC-1"},
		{Name: "A", AccountNo: "ACC-1", Password: "x", Email: "no-es-email"},
	} {
		_, err := uc.Signup(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(memory.New())
	_, err := uc.Signup(ctx, dto.SignupRequest{Name: "A", AccountNo: "ACC-1", Password: "bueno"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{AccountNo: "ACC-1", Password: "malo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{AccountNo: "ACC-9", Password: "bueno"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{AccountNo: "ACC-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_FalloDelAlmacen(t *testing.T) {
	store := memory.New()
	boom := errors.New("db caída")
	store.FailWith(boom)

	_, err := newAuth(store).Login(context.Background(), dto.LoginRequest{AccountNo: "ACC-1", Password: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestSetRole_ElevaYElTokenLoRefleja(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(memory.New())
	_, err := uc.Signup(ctx, dto.SignupRequest{Name: "Centro", AccountNo: "COL-1", Password: "secreto"})
	require.NoError(t, err)

	member, err := uc.SetRole(ctx, " COL-1 ", "Collector")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCollector, member.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{AccountNo: "COL-1", Password: "secreto"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCollector, claims.Role)
}

func TestSetRole_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(memory.New())
	_, err := uc.Signup(ctx, dto.SignupRequest{Name: "A", AccountNo: "ACC-1", Password: "x"})
	require.NoError(t, err)

	_, err = uc.SetRole(ctx, "ACC-1", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetRole(ctx, "", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetRole(ctx, "NOPE", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestEnsureAdmin_CreaLaCuenta(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newAuth(store)

	member, created, err := uc.EnsureAdmin(ctx, dto.SignupRequest{Name: "Administrador", AccountNo: "ADM-1", Password: "cambiar"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleAdmin, member.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{AccountNo: "ADM-1", Password: "cambiar"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	// Segunda vez: idempotente
	_, created, err = uc.EnsureAdmin(ctx, dto.SignupRequest{Name: "Administrador", AccountNo: "ADM-1", Password: "otro"})
	require.NoError(t, err)
	assert.False(t, created)
	_, err = uc.Login(ctx, dto.LoginRequest{AccountNo: "ADM-1", Password: "cambiar"})
	assert.NoError(t, err, "no se pisa el password existente")
}

func TestEnsureAdmin_ElevaCuentaExistente(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(memory.New())
	_, err := uc.Signup(ctx, dto.SignupRequest{Name: "Jefe", AccountNo: "ACC-5", Password: "propio"})
	require.NoError(t, err)

	member, created, err := uc.EnsureAdmin(ctx, dto.SignupRequest{Name: "Administrador", AccountNo: "ACC-5", Password: "cambiar"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entity.RoleAdmin, member.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{AccountNo: "ACC-5", Password: "propio"})
	assert.NoError(t, err)
}

func TestEnsureAdmin_DatosInvalidos(t *testing.T) {
	_, _, err := newAuth(memory.New()).EnsureAdmin(context.Background(), dto.SignupRequest{Name: "A", AccountNo: "ADM-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
