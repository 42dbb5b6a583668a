package inventory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/inventory"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductStore serves both product views from memory and records locks
type fakeProductStore struct {
	catalog.ProductRepository
	mu       sync.Mutex
	products map[string]*catalog.Product
	locks    []string
}

func (f *fakeProductStore) LockByID(_ context.Context, id string) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	f.locks = append(f.locks, id)
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) SetStockQuantity(_ context.Context, id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (f *fakeProductStore) FindByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) quantity(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].StockQuantity
}

type fakeStockRepo struct {
	mu     sync.Mutex
	stocks map[string]inventory.Stock
}

func (f *fakeStockRepo) FindByID(_ context.Context, id string) (*inventory.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stocks[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStockRepo) List(_ context.Context, filter shared.Filter) ([]inventory.Stock, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inventory.Stock
	for _, s := range f.stocks {
		if pid, ok := filter.Filters["product_id"]; ok && pid != s.ProductID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeStockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]inventory.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inventory.Stock
	for _, s := range f.stocks {
		if s.WarehouseID == warehouseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) Save(_ context.Context, s *inventory.Stock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stocks[s.ID] = *s
	return nil
}

func (f *fakeStockRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stocks[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.stocks, id)
	return nil
}

func (f *fakeStockRepo) SumQuantityByProduct(_ context.Context, productID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, s := range f.stocks {
		if s.ProductID == productID {
			total += s.Quantity
		}
	}
	return total, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*partner.Warehouse
}

func (f *fakeWarehouseRepo) FindByID(_ context.Context, id string) (*partner.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w, nil
}

func (f *fakeWarehouseRepo) FindByIDs(_ context.Context, ids []string) ([]partner.Warehouse, error) {
	var out []partner.Warehouse
	for _, id := range ids {
		if w, ok := f.warehouses[id]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) List(context.Context, shared.Filter) ([]partner.Warehouse, int64, error) {
	return nil, 0, nil
}

func (f *fakeWarehouseRepo) Save(_ context.Context, w *partner.Warehouse) error {
	f.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.warehouses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.warehouses, id)
	return nil
}

type stockFixture struct {
	products   *fakeProductStore
	stocks     *fakeStockRepo
	warehouses *fakeWarehouseRepo
	service    *StockService
}

func newStockFixture(t *testing.T, productIDs ...string) *stockFixture {
	t.Helper()
	f := &stockFixture{
		products:   &fakeProductStore{products: map[string]*catalog.Product{}},
		stocks:     &fakeStockRepo{stocks: map[string]inventory.Stock{}},
		warehouses: &fakeWarehouseRepo{warehouses: map[string]*partner.Warehouse{}},
	}
	for _, id := range productIDs {
		p, err := catalog.NewProduct("Product "+id, "SKU-"+id, valueobject.MustMoney("1", valueobject.USD))
		require.NoError(t, err)
		p.ID = id
		f.products.products[id] = p
	}
	for _, id := range []string{"w1", "w2"} {
		w, err := partner.NewWarehouse("Warehouse "+id, "Somewhere")
		require.NoError(t, err)
		w.ID = id
		f.warehouses.warehouses[id] = w
	}
	scope := NewNoOpInventoryScope(f.products, f.stocks, f.warehouses)
	f.service = NewStockService(scope, f.stocks, f.products, f.warehouses, nil)
	return f
}

func TestStockService_Create_Aggregates(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1")

	first, err := f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w1", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, f.products.quantity("p1"))
	assert.Equal(t, "w1", first.Warehouse.ID)
	assert.Equal(t, "SKU-p1", first.Product.SKU)

	_, err = f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w2", Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 12, f.products.quantity("p1"))

	_, err = f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w1", Quantity: 1})
	require.NoError(t, err, "duplicate product/warehouse pairs are allowed")
	assert.Equal(t, 13, f.products.quantity("p1"))
}

func TestStockService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1")

	_, err := f.service.Create(ctx, CreateStockRequest{ProductID: "missing", WarehouseID: "w1", Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w1", Quantity: -1})
	var verr *shared.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Empty(t, f.stocks.stocks)
	assert.Equal(t, 0, f.products.quantity("p1"))
}

func TestStockService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1")

	a, err := f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w1", Quantity: 4})
	require.NoError(t, err)
	b, err := f.service.Create(ctx, CreateStockRequest{ProductID: "p1", WarehouseID: "w2", Quantity: 6})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, a.ID))
	assert.Equal(t, 6, f.products.quantity("p1"))

	require.NoError(t, f.service.Delete(ctx, b.ID))
	assert.Equal(t, 0, f.products.quantity("p1"), "removing the last row yields zero")

	assert.ErrorIs(t, f.service.Delete(ctx, b.ID), shared.ErrNotFound)
}

func TestStockService_Update_MovesBetweenProducts(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "pA", "pB")

	row, err := f.service.Create(ctx, CreateStockRequest{ProductID: "pB", WarehouseID: "w1", Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, f.products.quantity("pB"))

	f.products.locks = nil
	target, qty := "pA", 3
	updated, err := f.service.Update(ctx, row.ID, UpdateStockRequest{ProductID: &target, Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "pA", updated.Product.ID)
	assert.Equal(t, 3, f.products.quantity("pA"))
	assert.Equal(t, 0, f.products.quantity("pB"))
	assert.Equal(t, []string{"pA", "pB"}, f.products.locks, "products are locked in id order")
}

func TestStockService_DeleteWarehouse(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1", "p2")

	for _, req := range []CreateStockRequest{
		{ProductID: "p1", WarehouseID: "w1", Quantity: 2},
		{ProductID: "p1", WarehouseID: "w2", Quantity: 5},
		{ProductID: "p2", WarehouseID: "w1", Quantity: 8},
	} {
		_, err := f.service.Create(ctx, req)
		require.NoError(t, err)
	}

	require.NoError(t, f.service.DeleteWarehouse(ctx, "w1"))
	assert.Equal(t, 5, f.products.quantity("p1"))
	assert.Equal(t, 0, f.products.quantity("p2"))
	assert.NotContains(t, f.warehouses.warehouses, "w1")
	assert.Len(t, f.stocks.stocks, 1)

	assert.ErrorIs(t, f.service.DeleteWarehouse(ctx, "w1"), shared.ErrNotFound)
}

func TestStockService_Recalculate(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1")
	f.stocks.stocks["s1"] = inventory.Stock{ID: "s1", ProductID: "p1", WarehouseID: "w1", Quantity: 11}

	total, err := f.service.Recalculate(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	assert.Equal(t, 11, f.products.quantity("p1"))
}

func TestStockService_List_PastTheEnd(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t, "p1")

	page, err := f.service.List(ctx, StockListFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Empty(t, page.Items)

	page, err = f.service.List(ctx, StockListFilter{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
