package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	imageRepo    catalog.ProductImageRepository
	storage      ObjectStorageService
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	imageRepo catalog.ProductImageRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		storage:      storage,
		logger:       logger,
	}
}

// GetByID returns a product with its images
func (s *ProductService) GetByID(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withImages(ctx, product)
}

// GetBySKU returns a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	return s.productRepo.FindBySKU(ctx, sku)
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductListItem], error) {
	domainFilter := catalog.ProductFilter{
		Filter:     shared.PageFilter(filter.Page),
		IsActive:   filter.IsActive,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		CategoryID: filter.CategoryID,
	}
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
	}

	products, total, err := s.productRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return shared.PageOf(ToProductListItems(products), total, domainFilter.Filter), nil
}

// ListByCategory returns a page of the category's products
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string, page int) (*shared.Paginated[ProductListItem], error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.List(ctx, ProductListFilter{Page: page, CategoryID: categoryID})
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := buildPrice(req.Price, req.PriceCurrency)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.IsActive {
		product.Activate()
	}

	categoryIDs, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	product.SetCategories(categoryIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceCategories(ctx, product.ID, product.CategoryIDs); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("sku", product.SKU))
	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update
func (s *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, sku, description := product.Name, product.SKU, product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.SKU != nil {
		sku = *req.SKU
		exists, err := s.productRepo.ExistsBySKU(ctx, sku, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, sku, description); err != nil {
		return nil, err
	}

	if req.Price != nil || req.PriceCurrency != nil {
		amount := product.Price.Amount()
		currency := product.Price.Currency().String()
		if req.Price != nil {
			amount = *req.Price
		}
		if req.PriceCurrency != nil {
			currency = *req.PriceCurrency
		}
		price, err := buildPrice(amount, currency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if req.CategoryIDs != nil {
		if _, err := s.SetCategories(ctx, product.ID, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info("product updated", zap.String("product_id", product.ID))
	return s.GetByID(ctx, product.ID)
}

// SetCategories replaces the product's category links
func (s *ProductService) SetCategories(ctx context.Context, id string, categoryIDs []string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resolved, err := s.resolveCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	product.SetCategories(resolved)
	if err := s.productRepo.ReplaceCategories(ctx, product.ID, product.CategoryIDs); err != nil {
		return nil, err
	}
	return s.withImages(ctx, product)
}

// Delete removes a product and the stored objects of its images.
// Object removal failures are logged; the rows are already gone.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	images, err := s.imageRepo.FindByProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	for _, img := range images {
		if err := s.storage.DeleteObject(ctx, img.Image); err != nil {
			s.logger.Warn("failed to delete image object",
				zap.String("product_id", id),
				zap.String("key", img.Image),
				zap.Error(err))
		}
	}
	s.logger.Info("product deleted", zap.String("product_id", id), zap.Int("images", len(images)))
	return nil
}

func (s *ProductService) withImages(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	response := ToProductResponse(product)
	images, err := s.imageRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	response.Images, err = imageResponses(ctx, s.storage, images)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// resolveCategories dedupes ids and rejects unknown ones
func (s *ProductService) resolveCategories(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	found, err := s.categoryRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(found))
	for _, c := range found {
		known[c.ID] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := known[id]; !ok {
			return nil, shared.NewValidationError("category_ids", fmt.Sprintf("Unknown category: %s", id))
		}
	}
	return unique, nil
}

// buildPrice validates currency and amount into Money
func buildPrice(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	if strings.TrimSpace(currency) == "" {
		currency = valueobject.DefaultCurrency.String()
	}
	cur, err := valueobject.ParseCurrency(currency)
	if err != nil {
		return valueobject.Money{}, shared.NewValidationError("price_currency", "Enter a valid ISO 4217 currency code")
	}
	price, err := valueobject.NewMoney(amount, cur)
	if err != nil {
		return valueobject.Money{}, shared.NewValidationError("price", err.Error())
	}
	return price, nil
}
