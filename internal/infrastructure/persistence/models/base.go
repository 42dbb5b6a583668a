package models

import (
	"time"

	"github.com/pimify/backend/internal/domain/shared"
)

// BaseModel provides the persistence fields of NanoID-keyed entities.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(21);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every model in dependency order, for AutoMigrate on
// drivers without SQL migrations.
func All() []any {
	return []any{
		&CategoryModel{},
		&ProductModel{},
		&ProductCategoryModel{},
		&ProductImageModel{},
		&SupplierModel{},
		&ProductSupplierModel{},
		&WarehouseModel{},
		&StockModel{},
		&APIKeyModel{},
		&OrganizationModel{},
		&StaffUserModel{},
		&ExchangeRateModel{},
	}
}
