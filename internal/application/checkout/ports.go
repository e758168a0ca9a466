package checkout

import (
	"context"

	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de pedidos y stock. El alta del pedido y el descuento de stock
// forman una unidad atómica: un lector nunca ve una sin la otra.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error) error
}
