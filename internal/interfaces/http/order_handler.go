package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/application/orders"
	"github.com/paisasoft/mercado-api/internal/application/receipt"
	"github.com/paisasoft/mercado-api/internal/domain"
)

// OrderHandler maneja la consulta de pedidos, el avance de estado por el
// personal y la descarga del comprobante (HTML y PDF).
type OrderHandler struct {
	uc        *orders.OrderUseCase
	pdfUC     *orders.ReceiptPDFUseCase
	receiptUC *receipt.HTMLUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, pdfUC *orders.ReceiptPDFUseCase, receiptUC *receipt.HTMLUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pdfUC: pdfUC, receiptUC: receiptUC}
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todos los pedidos (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders/all [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListAll(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListToday godoc
// @Summary      Pedidos de hoy (admin)
// @Description  Pedidos creados desde la medianoche del día actual, para el tablero de preparación.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders/today [get]
func (h *OrderHandler) ListToday(c *fiber.Ctx) error {
	out, err := h.uc.ListToday()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Description  Solo el dueño del pedido o un admin pueden consultarlo.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Avanzar estado del pedido (admin)
// @Description  La secuencia es pending → preparing → ready → completed. Se permite saltar hacia adelante; nunca retroceder.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdvanceStatus(c.Params("id"), in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
		}
		return orderError(c, err)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Recibo del pedido en HTML
// @Description  Fragmento HTML del recibo para la pantalla de confirmación. El query param confirmation (opcional) agrega el bloque de confirmación SUNAT.
// @Tags         orders
// @Security     Bearer
// @Produce      html
// @Param        id            path   string  true   "ID del pedido"
// @Param        confirmation  query  string  false  "Código de confirmación SUNAT"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) GetReceipt(c *fiber.Ctx) error {
	htmlDoc, err := h.receiptUC.RenderOrderReceipt(
		GetUserID(c), GetRole(c), c.Params("id"), c.Query("confirmation"),
	)
	if err != nil {
		return orderError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(htmlDoc)
}

// DownloadReceiptPDF godoc
// @Summary      Descargar comprobante en PDF
// @Description  Genera la boleta o factura del pedido. El query param confirmation (opcional) agrega el bloque de confirmación SUNAT con código QR.
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id            path   string  true   "ID del pedido"
// @Param        confirmation  query  string  false  "Código de confirmación SUNAT"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt.pdf [get]
func (h *OrderHandler) DownloadReceiptPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadReceiptPDF(
		c.Context(), GetUserID(c), GetRole(c), c.Params("id"), c.Query("confirmation"),
	)
	if err != nil {
		return orderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// orderError mapea los errores comunes de pedidos a su status HTTP.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el pedido no te pertenece"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
