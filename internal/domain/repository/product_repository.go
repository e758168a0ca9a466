package repository

import "github.com/paisasoft/mercado-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List filtra por categoría y/o término de búsqueda sobre el nombre
	// (ambos opcionales, vacío = sin filtro).
	List(category, search string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

// StockRepository acceso al stock por producto, usable dentro de una
// transacción para serializar descuentos concurrentes por producto.
type StockRepository interface {
	// GetForUpdate obtiene el stock actual bloqueando la fila del producto
	// hasta el fin de la transacción.
	GetForUpdate(productID string) (int64, error)
	// SetStock fija el stock del producto (ya con piso en cero aplicado).
	SetStock(productID string, quantity int64) error
}
