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

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id string) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds suppliers by id; unknown ids are absent from the result
func (r *GormSupplierRepository) FindByIDs(ctx context.Context, ids []string) ([]partner.Supplier, error) {
	if len(ids) == 0 {
		return []partner.Supplier{}, nil
	}
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return suppliersToDomain(rows), nil
}

// List returns a page of suppliers and the total count
func (r *GormSupplierRepository) List(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.SupplierModel{})
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := containsPattern(search)
			q = q.Where(likeClause("name")+" OR "+likeClause("email"), pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.SupplierModel
	if err := paginate(base(), filter, SupplierSortFields, "name", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return suppliersToDomain(rows), total, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	model := models.SupplierModelFromDomain(supplier)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// Delete deletes a supplier and its product links
func (r *GormSupplierRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supplier_id = ?", id).Delete(&models.ProductSupplierModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SupplierModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func suppliersToDomain(rows []models.SupplierModel) []partner.Supplier {
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
