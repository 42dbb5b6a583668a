package catalog

import (
	"context"
	"io"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
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

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error {
	args := m.Called(ctx, productID, categoryIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlugs(ctx context.Context, slugs []string) ([]catalog.Category, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]catalog.Category, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockProductImageRepository is a mock implementation of ProductImageRepository
type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) FindByID(ctx context.Context, id uint) (*catalog.ProductImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) FindByProduct(ctx context.Context, productID string) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductImageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) URL(_ context.Context, key string) (string, error) {
	return "/media/" + key, nil
}
