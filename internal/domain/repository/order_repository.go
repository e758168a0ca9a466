package repository

import "github.com/paisasoft/mercado-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order.
// Los pedidos son append-only: no existe Delete.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// UpdateStatus persiste el nuevo estado. La validación de la
	// transición es responsabilidad del caso de uso.
	UpdateStatus(id, status string) error
	ListByOwner(userID string) ([]*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
	ListCreatedToday() ([]*entity.Order, error)
}
