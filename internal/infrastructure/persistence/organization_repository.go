package persistence

import (
	"context"
	"time"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrganizationRepository stores the singleton organization row
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Get returns the organization or shared.ErrNotFound
func (r *GormOrganizationRepository) Get(ctx context.Context) (*identity.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", identity.OrganizationID).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Upsert inserts the row or overwrites every column but created_at
func (r *GormOrganizationRepository) Upsert(ctx context.Context, org *identity.Organization) error {
	model := models.OrganizationModelFromDomain(org)
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "founded_date", "email",
				"phone_number", "website", "api_key_id", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return translateError(err)
	}
	org.ID = model.ID
	org.UpdatedAt = model.UpdatedAt
	if org.CreatedAt.IsZero() {
		org.CreatedAt = model.CreatedAt
	}
	return nil
}

// Ensure GormOrganizationRepository implements OrganizationRepository
var _ identity.OrganizationRepository = (*GormOrganizationRepository)(nil)
