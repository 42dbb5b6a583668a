package persistence

import (
	"context"
	"strings"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStaffUserRepository implements StaffUserRepository using GORM
type GormStaffUserRepository struct {
	db *gorm.DB
}

// NewGormStaffUserRepository creates a new GormStaffUserRepository
func NewGormStaffUserRepository(db *gorm.DB) *GormStaffUserRepository {
	return &GormStaffUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormStaffUserRepository) FindByID(ctx context.Context, id string) (*identity.StaffUser, error) {
	var model models.StaffUserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username, case-insensitively
func (r *GormStaffUserRepository) FindByUsername(ctx context.Context, username string) (*identity.StaffUser, error) {
	var model models.StaffUserModel
	if err := r.db.WithContext(ctx).
		First(&model, "username = ?", strings.ToLower(strings.TrimSpace(username))).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a user
func (r *GormStaffUserRepository) Save(ctx context.Context, user *identity.StaffUser) error {
	model := models.StaffUserModelFromDomain(user)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// Ensure GormStaffUserRepository implements StaffUserRepository
var _ identity.StaffUserRepository = (*GormStaffUserRepository)(nil)
