package models

import (
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(254);not null;index"`
	Phone   string `gorm:"type:varchar(20)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
	}
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{Name: s.Name, Email: s.Email, Phone: s.Phone, Address: s.Address}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ProductSupplierModel links a product to a supplier
type ProductSupplierModel struct {
	ID         string          `gorm:"type:varchar(21);primaryKey"`
	ProductID  string          `gorm:"type:varchar(21);not null;uniqueIndex:idx_product_supplier_pair,priority:1"`
	SupplierID string          `gorm:"type:varchar(21);not null;uniqueIndex:idx_product_supplier_pair,priority:2;index"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LeadTime   int             `gorm:"not null;default:0"`
	Product    ProductModel    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Supplier   SupplierModel   `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductSupplierModel) TableName() string {
	return "product_suppliers"
}

// ToDomain converts the persistence model to a domain ProductSupplier.
func (m *ProductSupplierModel) ToDomain() *partner.ProductSupplier {
	return &partner.ProductSupplier{
		ID:         m.ID,
		ProductID:  m.ProductID,
		SupplierID: m.SupplierID,
		CostPrice:  m.CostPrice,
		LeadTime:   m.LeadTime,
	}
}

// ProductSupplierModelFromDomain creates a new persistence model from a domain ProductSupplier.
func ProductSupplierModelFromDomain(ps *partner.ProductSupplier) *ProductSupplierModel {
	return &ProductSupplierModel{
		ID:         ps.ID,
		ProductID:  ps.ProductID,
		SupplierID: ps.SupplierID,
		CostPrice:  ps.CostPrice,
		LeadTime:   ps.LeadTime,
	}
}

// WarehouseModel is the persistence model for the Warehouse domain entity.
type WarehouseModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null"`
	Address string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse entity.
func (m *WarehouseModel) ToDomain() *partner.Warehouse {
	return &partner.Warehouse{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
	}
}

// WarehouseModelFromDomain creates a new persistence model from a domain Warehouse entity.
func WarehouseModelFromDomain(w *partner.Warehouse) *WarehouseModel {
	m := &WarehouseModel{Name: w.Name, Address: w.Address}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}
