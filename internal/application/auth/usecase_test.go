package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testJWT = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "pos-api-test",
}

func newAuthUC() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	clk := fixedClock{now: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)}
	return auth.NewAuthUseCase(memory.NewUserRepository(store), clk, testJWT), store
}

func TestRegisterUser_RolPorDefectoCajero(t *testing.T) {
	uc, _ := newAuthUC()

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@tienda.co",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, user.Role)
	assert.True(t, user.Active)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "otro456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreto123",
		Role:     "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Exitoso_TokenConClaims(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreto123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, registered.ID, out.User.ID)

	userID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	userRepo := memory.NewUserRepository(store)
	user, err := userRepo.GetByID(registered.ID)
	require.NoError(t, err)
	user.Active = false
	require.NoError(t, userRepo.Update(user))

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
