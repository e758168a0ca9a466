package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

func sampleOrder() *entity.Order {
	o := &entity.Order{
		ID:     "ORD-1710512345-042",
		UserID: "u-1",
		Customer: entity.CustomerDetails{
			FirstName:      "Rosa",
			LastName:       "Mendoza",
			DocumentType:   entity.DocTypeDNI,
			DocumentNumber: "87654321",
		},
		Items: []entity.CartLine{
			{ProductID: "p-1", Name: "Queso fresco 500g", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
			{ProductID: "p-2", Name: "Pan francés", UnitPrice: decimal.RequireFromString("0.50"), Quantity: 10},
		},
		Status:    entity.OrderStatusPending,
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
	o.Total = o.ComputeTotal()
	return o
}

func TestRender_ContenidoBasico(t *testing.T) {
	got := Render(sampleOrder(), nil)

	assert.Contains(t, got, "ORD-1710512345-042")
	assert.Contains(t, got, "Rosa Mendoza")
	assert.Contains(t, got, "2 x Queso fresco 500g")
	assert.Contains(t, got, "S/ 25.00")
	assert.Contains(t, got, "Subtotal: S/ 30.00")
	assert.Contains(t, got, "IGV (18%): S/ 5.40")
	assert.Contains(t, got, "Total: S/ 35.40")
	// Sin resultado del gateway no hay bloque de confirmación.
	assert.NotContains(t, got, "sunat")
}

func TestRender_BloqueDeConfirmacion(t *testing.T) {
	got := Render(sampleOrder(), &GatewayResult{
		Accepted:         true,
		ConfirmationCode: "0",
		Description:      "La Boleta numero B001-17105123, ha sido aceptada",
	})

	assert.Contains(t, got, "class=\"sunat\"")
	assert.Contains(t, got, "ha sido aceptada")
	assert.Contains(t, got, "digo: 0")
}

func TestRender_RechazoSinBloque(t *testing.T) {
	// Un comprobante rechazado no muestra bloque de confirmación: el
	// recibo de la venta se muestra igual.
	got := Render(sampleOrder(), &GatewayResult{Accepted: false, Description: "Firma inválida"})
	assert.NotContains(t, got, "class=\"sunat\"")
	assert.NotContains(t, got, "Firma inválida")
}

func TestRender_EscapaTextoDelUsuario(t *testing.T) {
	o := sampleOrder()
	o.Customer.FirstName = "<script>alert(1)</script>"
	o.Items[0].Name = "Queso <b>adulterado</b>"

	got := Render(o, &GatewayResult{Accepted: true, Description: "<img src=x>", ConfirmationCode: "0"})

	assert.NotContains(t, got, "<script>")
	assert.NotContains(t, got, "<b>adulterado</b>")
	assert.NotContains(t, got, "<img src=x>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestRender_TotalesPorLinea(t *testing.T) {
	// El recibo usa el total almacenado del pedido, no uno recalculado a
	// su manera: ambos deben coincidir siempre.
	o := sampleOrder()
	expected := o.Subtotal().Mul(decimal.RequireFromString("1.18")).Round(2)
	got := Render(o, nil)
	assert.True(t, strings.Contains(got, "Total: S/ "+expected.StringFixed(2)))
}
