package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	FindByID(ctx context.Context, id string) (*Warehouse, error)
	FindByIDs(ctx context.Context, ids []string) ([]Warehouse, error)
	List(ctx context.Context, filter shared.Filter) ([]Warehouse, int64, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id string) error
}
