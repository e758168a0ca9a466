package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/paisasoft/mercado-api/internal/application/checkout"
	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/application/orders"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

// CheckoutHandler maneja la compra del carrito. El endpoint acepta
// compradores anónimos: si hay token, el pedido queda asociado al usuario.
type CheckoutHandler struct {
	uc *checkout.PlaceOrderUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.PlaceOrderUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// PlaceOrder godoc
// @Summary      Comprar el carrito
// @Description  Guarda el pedido, descuenta stock y emite el comprobante electrónico. La respuesta siempre es 201 si el pedido se guardó, aun cuando SUNAT rechace o el gateway no responda (ver campo outcome).
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "Carrito y datos del comprador"
// @Success      201   {object}  dto.PlaceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	items := make([]entity.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.CartLine{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Category:  it.Category,
		})
	}
	customer := entity.CustomerDetails{
		FirstName:      in.Customer.FirstName,
		LastName:       in.Customer.LastName,
		Email:          in.Customer.Email,
		DocumentType:   in.Customer.DocumentType,
		DocumentNumber: in.Customer.DocumentNumber,
	}

	// GetUserID devuelve vacío si no hay token: comprador anónimo.
	result, err := h.uc.PlaceOrder(c.Context(), items, customer, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrPersistence) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: domain.ErrPersistence.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{
		Outcome:          string(result.Outcome),
		Order:            *orders.ToOrderResponse(result.Order),
		ConfirmationCode: result.ConfirmationCode,
		Advisory:         result.Advisory,
	})
}
