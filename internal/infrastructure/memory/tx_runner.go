package memory

import (
	"context"
	"sync"

	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// TxRunner serializa los checkouts sobre el store en memoria. No hay
// rollback: un callback que falla puede dejar descuentos de stock ya
// aplicados, igual que el store original de desarrollo. El de PostgreSQL
// sí revierte.
type TxRunner struct {
	mu    sync.Mutex
	store *Store
}

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunCheckout ejecuta fn con los repos del store, con exclusión mutua
// frente a otros checkouts. La sección crítica cubre leer stock,
// descontarlo y crear el pedido: dos compras concurrentes del mismo
// producto nunca pierden un descuento.
func (t *TxRunner) RunCheckout(ctx context.Context, fn func(repository.OrderRepository, repository.StockRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.store.OrderRepo(), t.store.StockRepo())
}
