package persistence

import (
	"context"
	"strings"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a category by its slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", strings.TrimSpace(slug)).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlugs finds categories by slug; unknown slugs are absent from the result
func (r *GormCategoryRepository) FindBySlugs(ctx context.Context, slugs []string) ([]catalog.Category, error) {
	return r.findIn(ctx, "slug", slugs)
}

// FindByIDs finds categories by id; unknown ids are absent from the result
func (r *GormCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]catalog.Category, error) {
	return r.findIn(ctx, "id", ids)
}

func (r *GormCategoryRepository) findIn(ctx context.Context, column string, values []string) ([]catalog.Category, error) {
	if len(values) == 0 {
		return []catalog.Category{}, nil
	}
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Where(column+" IN ?", values).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(rows), nil
}

// List returns a page of categories and the total count
func (r *GormCategoryRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Category, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.CategoryModel{})
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := containsPattern(search)
			q = q.Where(likeClause("name")+" OR "+likeClause("slug"), pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.CategoryModel
	if err := paginate(base(), filter, CategorySortFields, "name", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return categoriesToDomain(rows), total, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// Delete deletes a category; product links go with it
func (r *GormCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.ProductCategoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsBySlug checks if another category uses the given slug
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("slug = ?", strings.TrimSpace(slug))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func categoriesToDomain(rows []models.CategoryModel) []catalog.Category {
	out := make([]catalog.Category, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
