package catalog

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	IsActive   *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID string
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, with category ids loaded
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs returns the products found; missing ids are simply absent
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// List returns a page of products and the total match count
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)

	// ListAll returns every product, for exports
	ListAll(ctx context.Context) ([]Product, error)

	// Save creates or updates a product. It never writes stock_quantity.
	Save(ctx context.Context, product *Product) error

	// ReplaceCategories rewrites the product's category links
	ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error

	// Delete deletes a product and everything it owns
	Delete(ctx context.Context, id string) error

	// ExistsBySKU reports whether another product already uses sku
	ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error)
}

// ProductStockRepository is the narrow product view used by the stock
// aggregator inside its transaction.
type ProductStockRepository interface {
	// LockByID loads the product row and holds a write lock on it until the transaction ends
	LockByID(ctx context.Context, id string) (*Product, error)

	// SetStockQuantity writes only the derived stock_quantity column
	SetStockQuantity(ctx context.Context, id string, quantity int) error
}
