package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}}
}

func (m *memProductRepo) Create(p *entity.Product) error { m.byID[p.ID] = p; return nil }

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memProductRepo) Update(p *entity.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memProductRepo) List(category, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) Delete(id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func validCreate() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:      "ARROZ-5KG",
		Name:     "Arroz extra 5kg",
		Price:    decimal.RequireFromString("28.90"),
		Stock:    40,
		Category: "abarrotes",
		ImageURL: "https://cdn.example.com/arroz.jpg",
	}
}

func TestCreateProduct(t *testing.T) {
	uc := NewProductUseCase(newMemProductRepo())

	res, err := uc.Create(validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, int64(40), res.Stock)

	// SKU duplicado.
	_, err = uc.Create(validCreate())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateProduct_URLInvalida(t *testing.T) {
	uc := NewProductUseCase(newMemProductRepo())

	for _, bad := range []string{"ftp://cdn.example.com/a.jpg", "javascript:alert(1)", "//sin-esquema", "no-es-url"} {
		in := validCreate()
		in.ImageURL = bad
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrValidation, "url %q", bad)
	}

	// Vacía es válida (producto sin foto).
	in := validCreate()
	in.SKU = "OTRO-SKU"
	in.ImageURL = ""
	_, err := uc.Create(in)
	assert.NoError(t, err)
}

func TestUpdateProduct_CamposParciales(t *testing.T) {
	repo := newMemProductRepo()
	uc := NewProductUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("26.50")
	res, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, res.Price.Equal(newPrice))
	assert.Equal(t, "Arroz extra 5kg", res.Name, "los campos no enviados se conservan")

	negative := decimal.RequireFromString("-1")
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMemProductRepo()
	uc := NewProductUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete("inexistente"), domain.ErrNotFound)
}

func TestListProducts_Filtros(t *testing.T) {
	repo := newMemProductRepo()
	uc := NewProductUseCase(repo)

	_, err := uc.Create(validCreate())
	require.NoError(t, err)
	leche := validCreate()
	leche.SKU = "LECHE-1L"
	leche.Name = "Leche entera 1L"
	leche.Category = "lacteos"
	_, err = uc.Create(leche)
	require.NoError(t, err)

	res, err := uc.List("lacteos", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Leche entera 1L", res.Items[0].Name)

	res, err = uc.List("", "arroz", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "ARROZ-5KG", res.Items[0].SKU)
}
