package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest línea del carrito en el body de checkout.
type CartLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	Category  string          `json:"category"`
}

// CustomerDetailsRequest datos del comprador para el comprobante.
type CustomerDetailsRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"required,email"`
	DocumentType   string `json:"document_type" validate:"required,oneof=DNI RUC PASAPORTE CARNET_EXTRANJERIA"`
	DocumentNumber string `json:"document_number" validate:"required"`
}

// PlaceOrderRequest body para POST /api/checkout.
type PlaceOrderRequest struct {
	Items    []CartLineRequest      `json:"items" validate:"required,min=1,dive"`
	Customer CustomerDetailsRequest `json:"customer" validate:"required"`
}

// PlaceOrderResponse desenlace de la compra. Confirmation solo viene
// cuando SUNAT aceptó el comprobante; Advisory trae la advertencia en
// los desenlaces degradados.
type PlaceOrderResponse struct {
	Outcome          string        `json:"outcome"` // completed|completed_unverified|completed_no_invoice
	Order            OrderResponse `json:"order"`
	ConfirmationCode string        `json:"confirmation_code,omitempty"`
	Advisory         string        `json:"advisory,omitempty"`
}

// OrderLineResponse línea de pedido en respuestas.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Category  string          `json:"category,omitempty"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id,omitempty"`
	CustomerName   string              `json:"customer_name"`
	DocumentType   string              `json:"document_type"`
	DocumentNumber string              `json:"document_number"`
	Items          []OrderLineResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready completed"`
}
