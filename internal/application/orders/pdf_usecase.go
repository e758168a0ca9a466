package orders

import (
	"context"
	"fmt"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
)

// ReceiptPDFGenerator genera la representación gráfica (PDF) de un
// comprobante. La implementación vive en infraestructura.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, payload *domainsunat.InvoicePayload, confirmationCode string) ([]byte, error)
}

// ReceiptPDFUseCase genera el PDF del comprobante de un pedido. El
// comprobante se reconstruye desde el pedido guardado con los mismos
// datos que se enviaron a SUNAT.
type ReceiptPDFUseCase struct {
	orderRepo repository.OrderRepository
	generator ReceiptPDFGenerator
	emitter   domainsunat.Emitter
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(orderRepo repository.OrderRepository, generator ReceiptPDFGenerator, emitter domainsunat.Emitter) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{orderRepo: orderRepo, generator: generator, emitter: emitter}
}

// DownloadReceiptPDF genera el PDF del comprobante del pedido.
// confirmationCode es opcional: si viene, el PDF incluye el bloque de
// confirmación SUNAT con código QR.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
//   - domain.ErrForbidden        si el pedido no pertenece al solicitante.
func (uc *ReceiptPDFUseCase) DownloadReceiptPDF(
	ctx context.Context,
	actorID, actorRole, orderID, confirmationCode string,
) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if actorRole != entity.RoleAdmin && order.UserID != actorID {
		return nil, "", domain.ErrForbidden
	}

	payload, err := domainsunat.BuildInvoicePayload(order.Items, order.Customer, uc.emitter, order.ID, order.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: reconstruir comprobante: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, order, payload, confirmationCode)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("comprobante_%s-%s.pdf", payload.Serie, payload.Correlativo)
	return pdfBytes, filename, nil
}
