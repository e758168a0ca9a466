package orders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

type stubOrderRepo struct {
	byID map[string]*entity.Order
}

func (s *stubOrderRepo) Create(o *entity.Order) error { s.byID[o.ID] = o; return nil }

func (s *stubOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) UpdateStatus(id, status string) error {
	o, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (s *stubOrderRepo) ListByOwner(userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range s.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range s.byID {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrderRepo) ListCreatedToday() ([]*entity.Order, error) { return s.ListAll(0, 0) }

func seedOrder(status string) (*stubOrderRepo, *entity.Order) {
	o := &entity.Order{
		ID:     "ORD-1710512345-001",
		UserID: "u-1",
		Customer: entity.CustomerDetails{
			FirstName:      "Luis",
			LastName:       "Torres",
			DocumentType:   entity.DocTypeDNI,
			DocumentNumber: "12345678",
		},
		Items: []entity.CartLine{
			{ProductID: "p-1", Name: "Pan integral", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
		},
		Total:     decimal.RequireFromString("5.90"),
		Status:    status,
		CreatedAt: time.Now(),
	}
	return &stubOrderRepo{byID: map[string]*entity.Order{o.ID: o}}, o
}

func TestAdvanceStatus_SecuenciaNormal(t *testing.T) {
	repo, o := seedOrder(entity.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	res, err := uc.AdvanceStatus(o.ID, entity.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, res.Status)

	res, err = uc.AdvanceStatus(o.ID, entity.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, res.Status)

	res, err = uc.AdvanceStatus(o.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, res.Status)
}

func TestAdvanceStatus_SaltoHaciaAdelante(t *testing.T) {
	repo, o := seedOrder(entity.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	// Saltar etapas hacia adelante es válido (el mostrador puede marcar
	// listo directamente).
	res, err := uc.AdvanceStatus(o.ID, entity.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, res.Status)
}

func TestAdvanceStatus_Retroceso(t *testing.T) {
	repo, o := seedOrder(entity.OrderStatusReady)
	uc := NewOrderUseCase(repo)

	_, err := uc.AdvanceStatus(o.ID, entity.OrderStatusPreparing)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusReady, o.Status, "el pedido queda intacto")

	// Repetir el estado actual tampoco es una transición.
	_, err = uc.AdvanceStatus(o.ID, entity.OrderStatusReady)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvanceStatus_EstadoDesconocido(t *testing.T) {
	repo, o := seedOrder(entity.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	_, err := uc.AdvanceStatus(o.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestAdvanceStatus_PedidoInexistente(t *testing.T) {
	repo, _ := seedOrder(entity.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	_, err := uc.AdvanceStatus("ORD-0-000", entity.OrderStatusPreparing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_Propiedad(t *testing.T) {
	repo, o := seedOrder(entity.OrderStatusPending)
	uc := NewOrderUseCase(repo)

	// El dueño puede verlo.
	res, err := uc.GetByID("u-1", entity.RoleCustomer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Torres", res.CustomerName)

	// Otro cliente no.
	_, err = uc.GetByID("u-2", entity.RoleCustomer, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un admin sí.
	_, err = uc.GetByID("admin-1", entity.RoleAdmin, o.ID)
	assert.NoError(t, err)
}
