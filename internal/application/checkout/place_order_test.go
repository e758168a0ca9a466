package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
	infrasunat "github.com/paisasoft/mercado-api/internal/infrastructure/sunat"
)

// fakeOrderRepo guarda pedidos en memoria.
type fakeOrderRepo struct {
	orders []*entity.Order
	failOn error
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	if f.failOn != nil {
		return f.failOn
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) UpdateStatus(id, status string) error { return nil }
func (f *fakeOrderRepo) ListByOwner(userID string) ([]*entity.Order, error) {
	return f.orders, nil
}
func (f *fakeOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	return f.orders, nil
}
func (f *fakeOrderRepo) ListCreatedToday() ([]*entity.Order, error) { return f.orders, nil }

type fakeStockRepo struct {
	stock map[string]int64
}

func (f *fakeStockRepo) GetForUpdate(productID string) (int64, error) {
	s, ok := f.stock[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeStockRepo) SetStock(productID string, quantity int64) error {
	f.stock[productID] = quantity
	return nil
}

// fakeTxRunner ejecuta el callback sin transacción real.
type fakeTxRunner struct {
	orders *fakeOrderRepo
	stock  *fakeStockRepo
}

func (f *fakeTxRunner) RunCheckout(ctx context.Context, fn func(repository.OrderRepository, repository.StockRepository) error) error {
	return fn(f.orders, f.stock)
}

// fakeSubmitter responde con un resultado o un error fijo.
type fakeSubmitter struct {
	result *infrasunat.SubmitResult
	err    error
	got    *domainsunat.InvoicePayload
}

func (f *fakeSubmitter) Submit(ctx context.Context, p *domainsunat.InvoicePayload, token string) (*infrasunat.SubmitResult, error) {
	f.got = p
	return f.result, f.err
}

func buyer() entity.CustomerDetails {
	return entity.CustomerDetails{
		FirstName:      "María",
		LastName:       "Quispe",
		Email:          "maria@example.com",
		DocumentType:   entity.DocTypeDNI,
		DocumentNumber: "45678912",
	}
}

func cart() []entity.CartLine {
	return []entity.CartLine{
		{ProductID: "p-1", SKU: "MANZ-01", Name: "Manzana Fuji kg", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2, Category: "frutas"},
	}
}

func newFixture(sub *fakeSubmitter) (*PlaceOrderUseCase, *fakeOrderRepo, *fakeStockRepo) {
	orders := &fakeOrderRepo{}
	stock := &fakeStockRepo{stock: map[string]int64{"p-1": 5}}
	uc := NewPlaceOrderUseCase(
		&fakeTxRunner{orders: orders, stock: stock},
		sub,
		SUNATConfig{Token: "tok", Emitter: domainsunat.Emitter{RUC: "20123456789", RazonSocial: "PAISASOFT S.A.C."}},
	)
	return uc, orders, stock
}

func TestPlaceOrder_Aceptado(t *testing.T) {
	sub := &fakeSubmitter{result: &infrasunat.SubmitResult{
		Accepted:    true,
		Code:        "0",
		Description: "La Factura numero B001-17105123, ha sido aceptada",
	}}
	uc, orders, stock := newFixture(sub)

	res, err := uc.PlaceOrder(context.Background(), cart(), buyer(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "0", res.ConfirmationCode)

	// El pedido queda guardado en pending con el total con IGV.
	require.Len(t, orders.orders, 1)
	saved := orders.orders[0]
	assert.Equal(t, entity.OrderStatusPending, saved.Status)
	assert.True(t, saved.Total.Equal(decimal.RequireFromString("23.60")), "total %s", saved.Total)
	assert.True(t, strings.HasPrefix(saved.ID, "ORD-"))

	// Stock descontado dentro de la misma transacción.
	assert.Equal(t, int64(3), stock.stock["p-1"])

	// El comprobante enviado corresponde al pedido.
	require.NotNil(t, sub.got)
	assert.Equal(t, "03", sub.got.TipoDoc)
}

func TestPlaceOrder_GatewayCaido(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	uc, orders, _ := newFixture(sub)

	res, err := uc.PlaceOrder(context.Background(), cart(), buyer(), "u-1")
	// La caída del gateway jamás escapa como error: la venta ya está hecha.
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompletedNoInvoice, res.Outcome)
	assert.Empty(t, res.ConfirmationCode)
	assert.Len(t, orders.orders, 1)
}

func TestPlaceOrder_Rechazado(t *testing.T) {
	sub := &fakeSubmitter{result: &infrasunat.SubmitResult{
		Accepted:    false,
		Code:        "2335",
		Description: "Firma inválida",
	}}
	uc, orders, _ := newFixture(sub)

	res, err := uc.PlaceOrder(context.Background(), cart(), buyer(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompletedUnverified, res.Outcome)
	assert.Equal(t, "Firma inválida", res.Advisory)
	assert.Len(t, orders.orders, 1)
}

func TestPlaceOrder_SinToken(t *testing.T) {
	sub := &fakeSubmitter{}
	orders := &fakeOrderRepo{}
	stock := &fakeStockRepo{stock: map[string]int64{"p-1": 5}}
	uc := NewPlaceOrderUseCase(&fakeTxRunner{orders: orders, stock: stock}, sub, SUNATConfig{})

	res, err := uc.PlaceOrder(context.Background(), cart(), buyer(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompletedNoInvoice, res.Outcome)
	assert.Nil(t, sub.got, "no debe contactarse el gateway sin token")
}

func TestPlaceOrder_ValidacionSinEfectos(t *testing.T) {
	sub := &fakeSubmitter{}
	uc, orders, stock := newFixture(sub)

	_, err := uc.PlaceOrder(context.Background(), nil, buyer(), "u-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad := buyer()
	bad.DocumentType = "CEDULA"
	_, err = uc.PlaceOrder(context.Background(), cart(), bad, "u-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	qtyZero := cart()
	qtyZero[0].Quantity = 0
	_, err = uc.PlaceOrder(context.Background(), qtyZero, buyer(), "u-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, orders.orders)
	assert.Equal(t, int64(5), stock.stock["p-1"])
}

func TestPlaceOrder_FallaDeGuardado(t *testing.T) {
	sub := &fakeSubmitter{}
	orders := &fakeOrderRepo{failOn: errors.New("disco lleno")}
	stock := &fakeStockRepo{stock: map[string]int64{"p-1": 5}}
	uc := NewPlaceOrderUseCase(&fakeTxRunner{orders: orders, stock: stock}, sub,
		SUNATConfig{Token: "tok"})

	_, err := uc.PlaceOrder(context.Background(), cart(), buyer(), "u-1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Nil(t, sub.got, "sin guardado no hay facturación")
}

func TestPlaceOrder_StockPisoEnCero(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("down")}
	orders := &fakeOrderRepo{}
	stock := &fakeStockRepo{stock: map[string]int64{"p-1": 1}}
	uc := NewPlaceOrderUseCase(&fakeTxRunner{orders: orders, stock: stock}, sub,
		SUNATConfig{Token: "tok"})

	big := cart()
	big[0].Quantity = 4
	res, err := uc.PlaceOrder(context.Background(), big, buyer(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompletedNoInvoice, res.Outcome)
	assert.Equal(t, int64(0), stock.stock["p-1"], "el stock nunca baja de cero")
}
