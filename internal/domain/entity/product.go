package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock es el stock disponible; nunca baja de cero (los descuentos por
// venta hacen piso en cero).
type Product struct {
	ID          string
	SKU         string // código interno, único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario (sin IGV)
	Stock       int64
	Category    string
	ImageURL    string
	ExpiresAt   *time.Time // fecha de vencimiento, opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
