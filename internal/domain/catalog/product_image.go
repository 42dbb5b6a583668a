package catalog

import (
	"strings"
	"time"

	"github.com/pimify/backend/internal/domain/shared"
)

// ProductImageDir is the storage prefix for uploaded product images
const ProductImageDir = "product_images"

// ProductImage is an uploaded image owned by a product.
// Image holds the object storage key; the object is removed with the record.
type ProductImage struct {
	ID        uint
	ProductID string
	Image     string
	AltText   string
	CreatedAt time.Time
}

// NewProductImage creates an image record for an already stored object
func NewProductImage(productID, key, altText string) (*ProductImage, error) {
	verr := &shared.ValidationError{}
	if productID == "" {
		verr.Add("product", "Product is required")
	}
	if strings.TrimSpace(key) == "" {
		verr.Add("image", "Image is required")
	}
	if len(altText) > 255 {
		verr.Add("alt_text", "Alt text cannot exceed 255 characters")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &ProductImage{
		ProductID: productID,
		Image:     key,
		AltText:   strings.TrimSpace(altText),
		CreatedAt: time.Now(),
	}, nil
}
