package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productWritableColumns are the columns Save may touch. stock_quantity is
// deliberately absent: only SetStockQuantity writes it.
var productWritableColumns = []string{
	"name", "sku", "description", "price", "price_currency", "is_active", "updated_at",
}

// GormProductRepository implements ProductRepository and ProductStockRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID with its category ids
func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	product := model.ToDomain()
	ids, err := r.categoryIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	product.CategoryIDs = ids
	return product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "sku = ?", strings.TrimSpace(sku)).Error; err != nil {
		return nil, translateError(err)
	}
	product := model.ToDomain()
	ids, err := r.categoryIDs(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.CategoryIDs = ids
	return product, nil
}

// List returns a page of products matching the filter and the total count
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	base := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := paginate(base(), filter.Filter, ProductSortFields, "created_at", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return productsToDomain(rows), total, nil
}

// ListAll returns every product with category ids, ordered by SKU
func (r *GormProductRepository) ListAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("sku ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	var links []models.ProductCategoryModel
	if err := r.db.WithContext(ctx).Order("product_id, category_id").Find(&links).Error; err != nil {
		return nil, err
	}
	byProduct := make(map[string][]string, len(rows))
	for _, l := range links {
		byProduct[l.ProductID] = append(byProduct[l.ProductID], l.CategoryID)
	}

	products := productsToDomain(rows)
	for i := range products {
		if ids, ok := byProduct[products[i].ID]; ok {
			products[i].CategoryIDs = ids
		}
	}
	return products, nil
}

// Save creates or updates a product. stock_quantity is never written here.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.ProductModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		model.StockQuantity = 0
		return translateError(db.Omit(clause.Associations).Create(model).Error)
	}
	return translateError(db.Model(model).Select(productWritableColumns).Updates(model).Error)
}

// ReplaceCategories rewrites the product's category links
func (r *GormProductRepository) ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategoryModel{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]models.ProductCategoryModel, len(categoryIDs))
		for i, id := range categoryIDs {
			links[i] = models.ProductCategoryModel{ProductID: productID, CategoryID: id}
		}
		return translateError(tx.Omit(clause.Associations).Create(&links).Error)
	})
}

// Delete deletes a product together with its stock, supplier links, images
// and category links. Image objects are removed by the caller.
func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.StockModel{},
			&models.ProductSupplierModel{},
			&models.ProductImageModel{},
			&models.ProductCategoryModel{},
		}
		for _, m := range owned {
			if err := tx.Where("product_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return translateError(gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// ExistsBySKU checks if another product uses the given SKU
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("sku = ?", strings.TrimSpace(sku))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockByID loads the product and holds a row lock until the surrounding
// transaction ends. SQLite ignores the locking clause; its single writer
// gives the same guarantee.
func (r *GormProductRepository) LockByID(ctx context.Context, id string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// SetStockQuantity writes only the derived stock_quantity column
func (r *GormProductRepository) SetStockQuantity(ctx context.Context, id string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"stock_quantity": quantity, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormProductRepository) categoryIDs(ctx context.Context, productID string) ([]string, error) {
	ids := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.ProductCategoryModel{}).
		Where("product_id = ?", productID).
		Order("category_id").
		Pluck("category_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// applyFilter applies filter options without pagination. A search only
// matches active products and overrides the is_active filter.
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where("is_active = ?", true).
			Where(likeClause("name")+" OR "+likeClause("description"), pattern, pattern)
	} else if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.CategoryID != "" {
		sub := r.db.Model(&models.ProductCategoryModel{}).Select("product_id").Where("category_id = ?", filter.CategoryID)
		query = query.Where("id IN (?)", sub)
	}
	return query
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements the product repositories
var (
	_ catalog.ProductRepository      = (*GormProductRepository)(nil)
	_ catalog.ProductStockRepository = (*GormProductRepository)(nil)
)
