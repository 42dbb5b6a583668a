package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id string) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDs(ctx context.Context, ids []string) ([]partner.Supplier, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id string) (*partner.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByIDs(ctx context.Context, ids []string) ([]partner.Warehouse, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) List(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, w *partner.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductSupplierRepository is a mock implementation of ProductSupplierRepository
type MockProductSupplierRepository struct {
	mock.Mock
}

func (m *MockProductSupplierRepository) FindByID(ctx context.Context, id string) (*partner.ProductSupplier, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, string) *partner.ProductSupplier); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ProductSupplier), args.Error(1)
}

func (m *MockProductSupplierRepository) List(ctx context.Context, filter shared.Filter) ([]partner.ProductSupplier, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.ProductSupplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductSupplierRepository) Save(ctx context.Context, ps *partner.ProductSupplier) error {
	return m.Called(ctx, ps).Error(0)
}

func (m *MockProductSupplierRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository implements only the lookups the partner services use
type MockProductRepository struct {
	catalog.ProductRepository
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockWarehouseDeleter records cascading warehouse deletes
type MockWarehouseDeleter struct {
	mock.Mock
}

func (m *MockWarehouseDeleter) DeleteWarehouse(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
