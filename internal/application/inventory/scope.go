package inventory

import (
	"context"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/inventory"
	"github.com/pimify/backend/internal/domain/partner"
)

// InventoryScope provides transactional access to the repositories a stock
// write touches. Everything done through the repositories handed to fn
// commits or rolls back together.
type InventoryScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos InventoryRepositories) error) error
}

// InventoryRepositories are scoped to the surrounding transaction
type InventoryRepositories interface {
	// Products returns the lockable product view
	Products() catalog.ProductStockRepository
	// Stocks returns the stock repository
	Stocks() inventory.StockRepository
	// Warehouses returns the warehouse repository
	Warehouses() partner.WarehouseRepository
}

// NoOpInventoryScope runs fn against fixed repositories without a transaction.
// This is useful for testing.
type NoOpInventoryScope struct {
	products   catalog.ProductStockRepository
	stocks     inventory.StockRepository
	warehouses partner.WarehouseRepository
}

// NewNoOpInventoryScope creates a NoOpInventoryScope
func NewNoOpInventoryScope(
	products catalog.ProductStockRepository,
	stocks inventory.StockRepository,
	warehouses partner.WarehouseRepository,
) *NoOpInventoryScope {
	return &NoOpInventoryScope{products: products, stocks: stocks, warehouses: warehouses}
}

// Execute runs fn directly
func (s *NoOpInventoryScope) Execute(_ context.Context, fn func(repos InventoryRepositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpInventoryScope) Products() catalog.ProductStockRepository { return s.products }

// Stocks returns the stock repository
func (s *NoOpInventoryScope) Stocks() inventory.StockRepository { return s.stocks }

// Warehouses returns the warehouse repository
func (s *NoOpInventoryScope) Warehouses() partner.WarehouseRepository { return s.warehouses }

var (
	_ InventoryScope        = (*NoOpInventoryScope)(nil)
	_ InventoryRepositories = (*NoOpInventoryScope)(nil)
)
