package persistence

import (
	"context"
	"strings"

	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id string) (*partner.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds warehouses by id; unknown ids are absent from the result
func (r *GormWarehouseRepository) FindByIDs(ctx context.Context, ids []string) ([]partner.Warehouse, error) {
	if len(ids) == 0 {
		return []partner.Warehouse{}, nil
	}
	var rows []models.WarehouseModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return warehousesToDomain(rows), nil
}

// List returns a page of warehouses and the total count
func (r *GormWarehouseRepository) List(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.WarehouseModel{})
		if search := strings.TrimSpace(filter.Search); search != "" {
			q = q.Where(likeClause("name"), containsPattern(search))
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.WarehouseModel
	if err := paginate(base(), filter, WarehouseSortFields, "name", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return warehousesToDomain(rows), total, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	model := models.WarehouseModelFromDomain(warehouse)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// Delete deletes a warehouse. Its stock rows are removed by the stock
// service so that product totals are re-aggregated.
func (r *GormWarehouseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.WarehouseModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func warehousesToDomain(rows []models.WarehouseModel) []partner.Warehouse {
	out := make([]partner.Warehouse, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ partner.WarehouseRepository = (*GormWarehouseRepository)(nil)
