package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id string) (*Supplier, error)
	FindByIDs(ctx context.Context, ids []string) ([]Supplier, error)
	List(ctx context.Context, filter shared.Filter) ([]Supplier, int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id string) error
}
