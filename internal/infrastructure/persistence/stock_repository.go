package persistence

import (
	"context"

	"github.com/pimify/backend/internal/domain/inventory"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByID finds a stock row by its ID
func (r *GormStockRepository) FindByID(ctx context.Context, id string) (*inventory.Stock, error) {
	var model models.StockModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns a page of stock rows. Filters: product_id, warehouse_id.
func (r *GormStockRepository) List(ctx context.Context, filter shared.Filter) ([]inventory.Stock, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.StockModel{})
		for _, key := range []string{"product_id", "warehouse_id"} {
			if v, ok := filter.Filters[key]; ok && v != "" {
				q = q.Where(key+" = ?", v)
			}
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.StockModel
	if err := paginate(base(), filter, StockSortFields, "created_at", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Stock, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a stock row
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	model := models.StockModelFromDomain(stock)
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.StockModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return translateError(db.Omit(clause.Associations).Create(model).Error)
	}
	return translateError(db.Model(model).
		Select("product_id", "warehouse_id", "quantity", "updated_at").
		Updates(model).Error)
}

// Delete deletes a stock row
func (r *GormStockRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.StockModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumQuantityByProduct returns COALESCE(SUM(quantity), 0) for the product
func (r *GormStockRepository) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// ListByWarehouse returns the stock rows held at a warehouse
func (r *GormStockRepository) ListByWarehouse(ctx context.Context, warehouseID string) ([]inventory.Stock, error) {
	var rows []models.StockModel
	if err := r.db.WithContext(ctx).Where("warehouse_id = ?", warehouseID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.Stock, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
