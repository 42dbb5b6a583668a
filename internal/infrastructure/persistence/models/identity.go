package models

import (
	"time"

	"github.com/pimify/backend/internal/domain/identity"
)

// APIKeyModel is the persistence model for API keys
type APIKeyModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"column:api_key;type:varchar(100);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(100);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (APIKeyModel) TableName() string {
	return "api_keys"
}

// ToDomain converts the persistence model to a domain APIKey.
func (m *APIKeyModel) ToDomain() *identity.APIKey {
	return &identity.APIKey{
		ID:        m.ID,
		Key:       m.Key,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// APIKeyModelFromDomain creates a new persistence model from a domain APIKey.
func APIKeyModelFromDomain(k *identity.APIKey) *APIKeyModel {
	return &APIKeyModel{
		ID:        k.ID,
		Key:       k.Key,
		Name:      k.Name,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

// OrganizationModel is the singleton organization row. The id is pinned
// to 1 by a check constraint.
type OrganizationModel struct {
	ID          uint         `gorm:"primaryKey;autoIncrement:false;check:chk_organizations_singleton,id = 1"`
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string       `gorm:"type:text"`
	FoundedDate *time.Time   `gorm:"type:date"`
	Email       string       `gorm:"type:varchar(254)"`
	PhoneNumber string       `gorm:"type:varchar(20)"`
	Website     string       `gorm:"type:varchar(200)"`
	APIKeyID    *uint        `gorm:"index"`
	APIKey      *APIKeyModel `gorm:"foreignKey:APIKeyID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time    `gorm:"not null"`
	UpdatedAt   time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization.
func (m *OrganizationModel) ToDomain() *identity.Organization {
	return &identity.Organization{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		FoundedDate: m.FoundedDate,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Website:     m.Website,
		APIKeyID:    m.APIKeyID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// OrganizationModelFromDomain creates the persistence model, forcing the singleton id.
func OrganizationModelFromDomain(o *identity.Organization) *OrganizationModel {
	return &OrganizationModel{
		ID:          identity.OrganizationID,
		Name:        o.Name,
		Description: o.Description,
		FoundedDate: o.FoundedDate,
		Email:       o.Email,
		PhoneNumber: o.PhoneNumber,
		Website:     o.Website,
		APIKeyID:    o.APIKeyID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// StaffUserModel is the persistence model for back-office accounts
type StaffUserModel struct {
	BaseModel
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsStaff      bool   `gorm:"not null;default:true"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (StaffUserModel) TableName() string {
	return "staff_users"
}

// ToDomain converts the persistence model to a domain StaffUser.
func (m *StaffUserModel) ToDomain() *identity.StaffUser {
	return &identity.StaffUser{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		LastLoginAt:  m.LastLoginAt,
	}
}

// StaffUserModelFromDomain creates a new persistence model from a domain StaffUser.
func StaffUserModelFromDomain(u *identity.StaffUser) *StaffUserModel {
	m := &StaffUserModel{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
