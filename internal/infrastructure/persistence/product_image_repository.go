package persistence

import (
	"context"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductImageRepository implements ProductImageRepository using GORM
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewGormProductImageRepository creates a new GormProductImageRepository
func NewGormProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// FindByID finds an image record by its ID
func (r *GormProductImageRepository) FindByID(ctx context.Context, id uint) (*catalog.ProductImage, error) {
	var model models.ProductImageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByProduct lists a product's images in upload order
func (r *GormProductImageRepository) FindByProduct(ctx context.Context, productID string) ([]catalog.ProductImage, error) {
	var rows []models.ProductImageModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.ProductImage, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an image record; the generated id is written back
func (r *GormProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	model := models.ProductImageModelFromDomain(image)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err)
	}
	image.ID = model.ID
	return nil
}

// Delete deletes an image record
func (r *GormProductImageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductImageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductImageRepository implements ProductImageRepository
var _ catalog.ProductImageRepository = (*GormProductImageRepository)(nil)
