package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// ProductSupplierRepository defines the interface for product-supplier persistence.
// Save returns shared.ErrAlreadyExists when the pair is already linked.
type ProductSupplierRepository interface {
	FindByID(ctx context.Context, id string) (*ProductSupplier, error)
	List(ctx context.Context, filter shared.Filter) ([]ProductSupplier, int64, error)
	Save(ctx context.Context, ps *ProductSupplier) error
	Delete(ctx context.Context, id string) error
}
