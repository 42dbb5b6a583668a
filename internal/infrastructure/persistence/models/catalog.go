package models

import (
	"time"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
// StockQuantity is written only by the stock aggregator.
type ProductModel struct {
	BaseModel
	Name          string          `gorm:"type:varchar(100);not null"`
	SKU           string          `gorm:"column:sku;type:varchar(150);not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PriceCurrency string          `gorm:"type:varchar(3);not null;default:'USD'"`
	StockQuantity int             `gorm:"not null;default:0"`
	IsActive      bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Category ids are loaded separately.
func (m *ProductModel) ToDomain() *catalog.Product {
	cur := valueobject.Currency(m.PriceCurrency)
	if cur == "" {
		cur = valueobject.DefaultCurrency
	}
	price, _ := valueobject.NewMoney(m.Price, cur)
	return &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		SKU:           m.SKU,
		Description:   m.Description,
		Price:         price,
		StockQuantity: m.StockQuantity,
		IsActive:      m.IsActive,
		CategoryIDs:   []string{},
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Description = p.Description
	m.Price = p.Price.Amount()
	m.PriceCurrency = p.Price.Currency().String()
	m.StockQuantity = p.StockQuantity
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductCategoryModel is the product/category link table
type ProductCategoryModel struct {
	ProductID  string        `gorm:"type:varchar(21);primaryKey"`
	CategoryID string        `gorm:"type:varchar(21);primaryKey;index"`
	Product    ProductModel  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Category   CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
	Slug string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Slug: c.Slug}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ProductImageModel is the persistence model for product images
type ProductImageModel struct {
	ID        uint         `gorm:"primaryKey;autoIncrement"`
	ProductID string       `gorm:"type:varchar(21);not null;index"`
	Image     string       `gorm:"type:varchar(255);not null"`
	AltText   string       `gorm:"type:varchar(255)"`
	CreatedAt time.Time    `gorm:"not null"`
	Product   ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage.
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		ID:        m.ID,
		ProductID: m.ProductID,
		Image:     m.Image,
		AltText:   m.AltText,
		CreatedAt: m.CreatedAt,
	}
}

// ProductImageModelFromDomain creates a new persistence model from a domain ProductImage.
func ProductImageModelFromDomain(i *catalog.ProductImage) *ProductImageModel {
	return &ProductImageModel{
		ID:        i.ID,
		ProductID: i.ProductID,
		Image:     i.Image,
		AltText:   i.AltText,
		CreatedAt: i.CreatedAt,
	}
}
