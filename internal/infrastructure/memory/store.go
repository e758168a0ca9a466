// Package memory implementa los puertos de persistencia sobre mapas en
// proceso. Es el store del modo desarrollo: misma semántica que el de
// PostgreSQL pero sin base de datos, con serialización del checkout vía
// mutex en lugar de transacciones.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.OrderRepository   = (*OrderRepo)(nil)
	_ repository.StockRepository   = (*StockRepo)(nil)
	_ repository.ReportRepository  = (*ReportRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// Store contenedor compartido por todos los repos en memoria.
type Store struct {
	mu sync.RWMutex

	products map[string]*entity.Product
	orders   map[string]*entity.Order
	reports  map[string]*entity.ProductReport
	users    map[string]*entity.User

	orderSeq []string // IDs en orden de creación, para listados estables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		reports:  map[string]*entity.ProductReport{},
		users:    map[string]*entity.User{},
	}
}

// ProductRepo devuelve la vista de productos del store.
func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s: s} }

// OrderRepo devuelve la vista de pedidos del store.
func (s *Store) OrderRepo() *OrderRepo { return &OrderRepo{s: s} }

// StockRepo devuelve la vista de stock del store.
func (s *Store) StockRepo() *StockRepo { return &StockRepo{s: s} }

// ReportRepo devuelve la vista de denuncias del store.
func (s *Store) ReportRepo() *ReportRepo { return &ReportRepo{s: s} }

// UserRepo devuelve la vista de usuarios del store.
func (s *Store) UserRepo() *UserRepo { return &UserRepo{s: s} }

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) List(category, search string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *ProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// StockRepo implementación en memoria de repository.StockRepository.
// Las llamadas individuales son seguras; la atomicidad leer-descontar
// del checkout la da el TxRunner, que serializa el callback completo.
type StockRepo struct{ s *Store }

func (r *StockRepo) GetForUpdate(productID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.Stock, nil
}

func (r *StockRepo) SetStock(productID string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = quantity
	p.UpdatedAt = time.Now()
	return nil
}

// OrderRepo implementación en memoria de repository.OrderRepository.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.Items = append([]entity.CartLine(nil), o.Items...)
	r.s.orders[o.ID] = &cp
	r.s.orderSeq = append(r.s.orderSeq, o.ID)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Items = append([]entity.CartLine(nil), o.Items...)
	return &cp, nil
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *OrderRepo) ListByOwner(userID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for _, id := range r.s.orderSeq {
		o := r.s.orders[id]
		if o != nil && o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for _, id := range r.s.orderSeq {
		if o := r.s.orders[id]; o != nil {
			cp := *o
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *OrderRepo) ListCreatedToday() ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	y, m, d := time.Now().Date()
	var out []*entity.Order
	for _, id := range r.s.orderSeq {
		o := r.s.orders[id]
		if o == nil {
			continue
		}
		oy, om, od := o.CreatedAt.Date()
		if oy == y && om == m && od == d {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ReportRepo implementación en memoria de repository.ReportRepository.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) Create(rep *entity.ProductReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rep
	r.s.reports[rep.ID] = &cp
	return nil
}

func (r *ReportRepo) GetByID(id string) (*entity.ProductReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *ReportRepo) Update(rep *entity.ProductReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *rep
	r.s.reports[rep.ID] = &cp
	return nil
}

func (r *ReportRepo) ListAll() ([]*entity.ProductReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ProductReport
	for _, rep := range r.s.reports {
		cp := *rep
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepo) List() ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func paginate[T any](in []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
