package persistence

import (
	"context"

	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductSupplierRepository implements ProductSupplierRepository using GORM
type GormProductSupplierRepository struct {
	db *gorm.DB
}

// NewGormProductSupplierRepository creates a new GormProductSupplierRepository
func NewGormProductSupplierRepository(db *gorm.DB) *GormProductSupplierRepository {
	return &GormProductSupplierRepository{db: db}
}

// FindByID finds a link by its ID
func (r *GormProductSupplierRepository) FindByID(ctx context.Context, id string) (*partner.ProductSupplier, error) {
	var model models.ProductSupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns a page of links. Filters: product_id, supplier_id.
func (r *GormProductSupplierRepository) List(ctx context.Context, filter shared.Filter) ([]partner.ProductSupplier, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.ProductSupplierModel{})
		for _, key := range []string{"product_id", "supplier_id"} {
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
	var rows []models.ProductSupplierModel
	if err := paginate(base(), filter, ProductSupplierSortFields, "id", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.ProductSupplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a link; a duplicate pair is ErrAlreadyExists
func (r *GormProductSupplierRepository) Save(ctx context.Context, ps *partner.ProductSupplier) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.ProductSupplierModel{}).
		Where("product_id = ? AND supplier_id = ? AND id <> ?", ps.ProductID, ps.SupplierID, ps.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrAlreadyExists
	}
	model := models.ProductSupplierModelFromDomain(ps)
	return translateError(db.Omit(clause.Associations).Save(model).Error)
}

// Delete deletes a link
func (r *GormProductSupplierRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductSupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductSupplierRepository implements ProductSupplierRepository
var _ partner.ProductSupplierRepository = (*GormProductSupplierRepository)(nil)
