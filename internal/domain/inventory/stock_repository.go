package inventory

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// StockRepository defines the interface for stock persistence
type StockRepository interface {
	FindByID(ctx context.Context, id string) (*Stock, error)
	List(ctx context.Context, filter shared.Filter) ([]Stock, int64, error)
	Save(ctx context.Context, stock *Stock) error
	Delete(ctx context.Context, id string) error

	// ListByWarehouse returns every stock row held at the warehouse
	ListByWarehouse(ctx context.Context, warehouseID string) ([]Stock, error)
	// SumQuantityByProduct returns the total quantity across warehouses, 0 when no rows exist
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
}
