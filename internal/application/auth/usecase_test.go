package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: map[string]*entity.User{}} }

func (m *memUserRepo) Create(u *entity.User) error { m.byID[u.ID] = u; return nil }

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) UpdateStatus(id, status string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (m *memUserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Delete(id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func testJWTCfg() JWTConfig {
	return JWTConfig{Secret: "clave-de-prueba", ExpMinutes: 60, Issuer: "mercado-api-test"}
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Campos",
		Email:     "ana@example.com",
		Password:  "secreto-largo",
	}
}

func TestRegisterYLogin(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewAuthUseCase(repo, testJWTCfg(), nil)

	created, err := uc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, created.Role)
	assert.Equal(t, entity.UserStatusActive, created.Status)

	// El hash nunca es el password en claro.
	stored := repo.byID[created.ID]
	assert.NotEqual(t, "secreto-largo", stored.PasswordHash)

	res, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto-largo"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, created.ID, res.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := NewAuthUseCase(newMemUserRepo(), testJWTCfg(), nil)

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)
	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := NewAuthUseCase(newMemUserRepo(), testJWTCfg(), nil)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	// Password equivocado y email inexistente responden igual.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaBaneada(t *testing.T) {
	repo := newMemUserRepo()
	notifier := NewNotifier()
	uc := NewAuthUseCase(repo, testJWTCfg(), notifier)
	admin := NewUserAdminUseCase(repo, notifier)

	created, err := uc.Register(registerRequest())
	require.NoError(t, err)

	var events []Event
	notifier.Subscribe(func(ev Event) { events = append(events, ev) })

	_, err = admin.Ban("admin-1", created.ID)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto-largo"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)

	_, err = admin.Unban(created.ID)
	require.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto-largo"})
	assert.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, EventBanned, events[0].Kind)
	assert.Equal(t, EventUnbanned, events[1].Kind)
	assert.Equal(t, EventLoggedIn, events[2].Kind)
}

func TestAdmin_NoSePuedeAutoBanear(t *testing.T) {
	repo := newMemUserRepo()
	admin := NewUserAdminUseCase(repo, nil)
	repo.byID["admin-1"] = &entity.User{ID: "admin-1", Role: entity.RoleAdmin, Status: entity.UserStatusActive}

	_, err := admin.Ban("admin-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, admin.Delete("admin-1", "admin-1"), domain.ErrForbidden)
}
