package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (f *memUserRepo) Create(user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *memUserRepo) Delete(id string) error {
	delete(f.users, id)
	return nil
}

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "warehouse-api-test"}

func TestRegisterUser_OK(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@warehouse.local",
		Password: "clave-segura",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana@warehouse.local", out.Email)
	assert.Equal(t, entity.RoleOperador, out.Role, "sin rol explícito se asigna operador")
	assert.Equal(t, "active", out.Status)

	// El password se guarda hasheado con bcrypt, nunca en claro
	stored, _ := repo.GetByID(out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))
}

func TestRegisterUser_PasswordCorto(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@warehouse.local", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_SiempreOperador(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@warehouse.local",
		Password: "clave-segura",
	})
	require.NoError(t, err)

	// El registro público no puede otorgar privilegios: el rol persistido
	// es operador y solo el seed o un admin existente crean admins.
	stored, _ := repo.GetByID(out.ID)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleOperador, stored.Role)
	assert.NotEqual(t, entity.RoleAdmin, stored.Role)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@warehouse.local", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@warehouse.local", Password: "otra-clave-larga"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_OK(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out0, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@warehouse.local",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	// Promoción fuera del registro público, como lo haría el seed.
	repo.users[out0.ID].Role = entity.RoleAdmin

	out, err := uc.Login(dto.LoginRequest{Email: "ana@warehouse.local", Password: "clave-segura"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@warehouse.local", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@warehouse.local", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@warehouse.local", Password: "equivocada-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@warehouse.local", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@warehouse.local", Password: "clave-segura"})
	require.NoError(t, err)
	repo.users[out.ID].Status = "inactive"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@warehouse.local", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
