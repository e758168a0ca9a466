package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de identidad aceptados al momento del checkout.
// RUC implica factura; cualquier otro tipo implica boleta.
const (
	DocTypeDNI              = "DNI"
	DocTypeRUC              = "RUC"
	DocTypePassport         = "PASAPORTE"
	DocTypeForeignResidency = "CARNET_EXTRANJERIA"
)

// Estados del ciclo de vida de un pedido. La secuencia es fija y sirve
// para la barra de progreso; un admin puede saltar hacia adelante pero
// nunca retroceder.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

// orderStatusRank posición de cada estado dentro de la secuencia fija.
var orderStatusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusPreparing: 1,
	OrderStatusReady:     2,
	OrderStatusCompleted: 3,
}

// ValidOrderStatus indica si s es un estado conocido del ciclo de vida.
func ValidOrderStatus(s string) bool {
	_, ok := orderStatusRank[s]
	return ok
}

// OrderStatusRank devuelve la posición del estado en la secuencia
// pending → preparing → ready → completed (-1 si es desconocido).
func OrderStatusRank(s string) int {
	if r, ok := orderStatusRank[s]; ok {
		return r
	}
	return -1
}

// CartLine es una línea del carrito, congelada dentro del pedido.
type CartLine struct {
	ProductID string
	SKU       string
	Name      string
	UnitPrice decimal.Decimal // precio unitario sin IGV, >= 0
	Quantity  int64           // >= 1
	Category  string
}

// CustomerDetails datos del comprador capturados en el checkout.
// Se copian inmutables dentro del pedido.
type CustomerDetails struct {
	FirstName      string
	LastName       string
	Email          string
	DocumentType   string // DNI | RUC | PASAPORTE | CARNET_EXTRANJERIA
	DocumentNumber string
}

// FullName nombre completo para comprobantes.
func (c CustomerDetails) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Order es un pedido ya colocado. Es append-only: nunca se borra y su
// total siempre es recomputable desde las líneas (subtotal × 1.18,
// redondeado a 2 decimales).
type Order struct {
	ID        string // ORD-<epoch>-<sufijo>, único bajo concurrencia
	UserID    string // vacío para compradores anónimos
	Customer  CustomerDetails
	Items     []CartLine
	Total     decimal.Decimal
	Status    string
	CreatedAt time.Time
}

// Subtotal suma de precio × cantidad de todas las líneas, sin IGV.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// ComputeTotal recalcula el total del pedido: subtotal × 1.18 redondeado
// a 2 decimales. El campo Total nunca debe mutarse por otra vía.
func (o *Order) ComputeTotal() decimal.Decimal {
	return o.Subtotal().Mul(decimal.NewFromFloat(1.18)).Round(2)
}
