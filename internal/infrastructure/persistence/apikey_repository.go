package persistence

import (
	"context"
	"strings"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAPIKeyRepository implements APIKeyRepository using GORM
type GormAPIKeyRepository struct {
	db *gorm.DB
}

// NewGormAPIKeyRepository creates a new GormAPIKeyRepository
func NewGormAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

// FindByID finds a key by its ID
func (r *GormAPIKeyRepository) FindByID(ctx context.Context, id uint) (*identity.APIKey, error) {
	var model models.APIKeyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByKey finds a key by its token
func (r *GormAPIKeyRepository) FindByKey(ctx context.Context, key string) (*identity.APIKey, error) {
	var model models.APIKeyModel
	if err := r.db.WithContext(ctx).First(&model, "api_key = ?", key).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByKey reports whether a token is already stored
func (r *GormAPIKeyRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.APIKeyModel{}).Where("api_key = ?", key).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of keys. Filters: is_active.
func (r *GormAPIKeyRepository) List(ctx context.Context, filter shared.Filter) ([]identity.APIKey, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.APIKeyModel{})
		if search := strings.TrimSpace(filter.Search); search != "" {
			q = q.Where(likeClause("name"), containsPattern(search))
		}
		if active, ok := filter.Filters["is_active"].(bool); ok {
			q = q.Where("is_active = ?", active)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.APIKeyModel
	if err := paginate(base(), filter, APIKeySortFields, "created_at", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]identity.APIKey, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a key; the generated id is written back on create
func (r *GormAPIKeyRepository) Save(ctx context.Context, key *identity.APIKey) error {
	model := models.APIKeyModelFromDomain(key)
	db := r.db.WithContext(ctx)
	if model.ID == 0 {
		if err := db.Create(model).Error; err != nil {
			return translateError(err)
		}
		key.ID = model.ID
		key.CreatedAt = model.CreatedAt
		key.UpdatedAt = model.UpdatedAt
		return nil
	}
	result := db.Model(model).Select("api_key", "name", "is_active", "updated_at").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a key. An organization referencing it has its link cleared.
func (r *GormAPIKeyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrganizationModel{}).
			Where("api_key_id = ?", id).
			UpdateColumn("api_key_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.APIKeyModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormAPIKeyRepository implements APIKeyRepository
var _ identity.APIKeyRepository = (*GormAPIKeyRepository)(nil)
