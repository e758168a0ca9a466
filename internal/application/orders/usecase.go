package orders

import (
	"fmt"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// OrderUseCase consultas y avance de estado de pedidos. El ciclo de vida
// es pending → preparing → ready → completed; se permite saltar etapas
// hacia adelante (pending → ready) pero nunca retroceder.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// GetByID obtiene un pedido. Un cliente solo puede ver sus propios
// pedidos; un admin puede ver cualquiera.
func (uc *OrderUseCase) GetByID(actorID, actorRole, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if actorRole != entity.RoleAdmin && order.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	return ToOrderResponse(order), nil
}

// ListMine lista los pedidos del usuario autenticado.
func (uc *OrderUseCase) ListMine(userID string) (*dto.OrderListResponse, error) {
	list, err := uc.repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return toOrderList(list, dto.PageResponse{Total: len(list)}), nil
}

// ListAll lista pedidos para el panel de administración.
func (uc *OrderUseCase) ListAll(page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderList(list, dto.PageResponse{Limit: page.Limit, Offset: page.Offset}), nil
}

// ListToday lista los pedidos creados hoy (vista operativa del mostrador).
func (uc *OrderUseCase) ListToday() (*dto.OrderListResponse, error) {
	list, err := uc.repo.ListCreatedToday()
	if err != nil {
		return nil, err
	}
	return toOrderList(list, dto.PageResponse{Total: len(list)}), nil
}

// AdvanceStatus mueve un pedido a un estado posterior del ciclo de vida.
//
// Retorna:
//   - domain.ErrNotFound           si el pedido no existe.
//   - domain.ErrInvalidTransition  si el estado es desconocido, igual al
//     actual o anterior en la secuencia. El pedido queda intacto.
func (uc *OrderUseCase) AdvanceStatus(orderID, next string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(next) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidTransition, next)
	}
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if entity.OrderStatusRank(next) <= entity.OrderStatusRank(order.Status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, next)
	}
	if err := uc.repo.UpdateStatus(orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return ToOrderResponse(order), nil
}

// ToOrderResponse proyecta un pedido de dominio a su DTO de respuesta.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Category:  it.Category,
		})
	}
	return &dto.OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		CustomerName:   o.Customer.FullName(),
		DocumentType:   o.Customer.DocumentType,
		DocumentNumber: o.Customer.DocumentNumber,
		Items:          lines,
		Total:          o.Total,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
	}
}

func toOrderList(list []*entity.Order, page dto.PageResponse) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: page}
}
