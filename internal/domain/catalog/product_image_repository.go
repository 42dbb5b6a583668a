package catalog

import "context"

// ProductImageRepository defines the interface for product image persistence
type ProductImageRepository interface {
	FindByID(ctx context.Context, id uint) (*ProductImage, error)
	FindByProduct(ctx context.Context, productID string) ([]ProductImage, error)
	Save(ctx context.Context, image *ProductImage) error
	Delete(ctx context.Context, id uint) error
}
