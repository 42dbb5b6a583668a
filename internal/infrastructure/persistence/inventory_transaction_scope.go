package persistence

import (
	"context"

	appinv "github.com/pimify/backend/internal/application/inventory"
	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/inventory"
	"github.com/pimify/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormInventoryScope implements InventoryScope using GORM transactions
type GormInventoryScope struct {
	db *gorm.DB
}

// NewGormInventoryScope creates a new GormInventoryScope
func NewGormInventoryScope(db *gorm.DB) *GormInventoryScope {
	return &GormInventoryScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormInventoryScope) Execute(ctx context.Context, fn func(repos appinv.InventoryRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories hands out repositories bound to one transaction
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the current transaction
func (r *gormInventoryRepositories) Products() catalog.ProductStockRepository {
	return NewGormProductRepository(r.tx)
}

// Stocks returns the stock repository scoped to the current transaction
func (r *gormInventoryRepositories) Stocks() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

// Warehouses returns the warehouse repository scoped to the current transaction
func (r *gormInventoryRepositories) Warehouses() partner.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

var (
	_ appinv.InventoryScope        = (*GormInventoryScope)(nil)
	_ appinv.InventoryRepositories = (*gormInventoryRepositories)(nil)
)
