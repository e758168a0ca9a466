package receipt

import (
	"fmt"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// HTMLUseCase sirve el recibo en HTML de un pedido ya guardado, para la
// pantalla de confirmación y el historial de compras.
type HTMLUseCase struct {
	orderRepo repository.OrderRepository
}

// NewHTMLUseCase construye el caso de uso.
func NewHTMLUseCase(orderRepo repository.OrderRepository) *HTMLUseCase {
	return &HTMLUseCase{orderRepo: orderRepo}
}

// RenderOrderReceipt devuelve el recibo HTML del pedido. confirmationCode
// es opcional: si viene, el recibo incluye el bloque de confirmación SUNAT.
// Solo el dueño del pedido o un admin pueden verlo.
func (uc *HTMLUseCase) RenderOrderReceipt(actorID, actorRole, orderID, confirmationCode string) (string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", fmt.Errorf("recibo: obtener pedido: %w", err)
	}
	if actorRole != entity.RoleAdmin && order.UserID != actorID {
		return "", domain.ErrForbidden
	}

	var result *GatewayResult
	if confirmationCode != "" {
		result = &GatewayResult{
			Accepted:         true,
			ConfirmationCode: confirmationCode,
			Description:      "Comprobante aceptado por SUNAT",
		}
	}
	return Render(order, result), nil
}
