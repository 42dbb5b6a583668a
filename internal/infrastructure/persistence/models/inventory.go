package models

import (
	"time"

	"github.com/pimify/backend/internal/domain/inventory"
)

// StockModel is the quantity of a product held at a warehouse.
// Duplicate (product, warehouse) rows are allowed.
type StockModel struct {
	ID          string         `gorm:"type:varchar(21);primaryKey"`
	ProductID   string         `gorm:"type:varchar(21);not null;index"`
	WarehouseID string         `gorm:"type:varchar(21);not null;index"`
	Quantity    int            `gorm:"not null;default:0;check:chk_stocks_quantity,quantity >= 0"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	Product     ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Warehouse   WarehouseModel `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "stocks"
}

// ToDomain converts the persistence model to a domain Stock.
func (m *StockModel) ToDomain() *inventory.Stock {
	return &inventory.Stock{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
	}
}

// StockModelFromDomain creates a new persistence model from a domain Stock.
func StockModelFromDomain(s *inventory.Stock) *StockModel {
	return &StockModel{
		ID:          s.ID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
	}
}
