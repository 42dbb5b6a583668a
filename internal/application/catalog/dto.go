package catalog

import (
	"time"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	SKU           string          `json:"sku" binding:"required,min=1,max=150"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PriceCurrency string          `json:"price_currency" binding:"omitempty,len=3"`
	IsActive      bool            `json:"is_active"`
	CategoryIDs   []string        `json:"category_ids"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	SKU           *string          `json:"sku" binding:"omitempty,min=1,max=150"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	PriceCurrency *string          `json:"price_currency" binding:"omitempty,len=3"`
	IsActive      *bool            `json:"is_active"`
	CategoryIDs   []string         `json:"category_ids"`
}

// SetCategoriesRequest replaces a product's categories
type SetCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Page       int
	IsActive   *bool
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID string
	OrderBy    string
	OrderDir   string
}

// ProductListItem is the compact product shape used in lists
type ProductListItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PriceCurrency string          `json:"price_currency"`
	IsActive      bool            `json:"is_active"`
}

// ProductImageResponse represents an uploaded image
type ProductImageResponse struct {
	ID      uint   `json:"id"`
	Image   string `json:"image"`
	AltText string `json:"alt_text"`
}

// ProductResponse is the detailed product shape
type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	SKU           string                 `json:"sku"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	PriceCurrency string                 `json:"price_currency"`
	StockQuantity int                    `json:"stock_quantity"`
	IsActive      bool                   `json:"is_active"`
	CategoryIDs   []string               `json:"category_ids"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Images        []ProductImageResponse `json:"images"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"required,min=1,max=50"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug *string `json:"slug" binding:"omitempty,min=1,max=50"`
}

// CategoryResponse represents a category
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ToProductListItem converts a domain product to its list shape
func ToProductListItem(p *catalog.Product) ProductListItem {
	return ProductListItem{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Price:         p.Price.Amount(),
		PriceCurrency: p.Price.Currency().String(),
		IsActive:      p.IsActive,
	}
}

// ToProductListItems converts a slice of domain products
func ToProductListItems(products []catalog.Product) []ProductListItem {
	out := make([]ProductListItem, len(products))
	for i := range products {
		out[i] = ToProductListItem(&products[i])
	}
	return out
}

// ToProductResponse converts a domain product; images are attached by the caller
func ToProductResponse(p *catalog.Product) ProductResponse {
	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Price:         p.Price.Amount(),
		PriceCurrency: p.Price.Currency().String(),
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CategoryIDs:   categoryIDs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Images:        []ProductImageResponse{},
	}
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// ToCategoryResponses converts a slice of domain categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}
