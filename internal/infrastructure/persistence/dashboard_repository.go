package persistence

import (
	"context"

	"github.com/pimify/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardReader implements report.DashboardReader using GORM
type GormDashboardReader struct {
	db *gorm.DB
}

// NewGormDashboardReader creates a new GormDashboardReader
func NewGormDashboardReader(db *gorm.DB) *GormDashboardReader {
	return &GormDashboardReader{db: db}
}

// CatalogSummary returns product counters and the total quantity held in stock rows
func (r *GormDashboardReader) CatalogSummary(ctx context.Context, lowStockThreshold int) (*report.CatalogSummary, error) {
	type productResult struct {
		TotalProducts  int64
		ActiveProducts int64
		LowStock       int64
	}

	var products productResult
	err := r.db.WithContext(ctx).Table("products p").
		Select(`
			COUNT(*) as total_products,
			COALESCE(SUM(CASE WHEN p.is_active THEN 1 ELSE 0 END), 0) as active_products,
			COALESCE(SUM(CASE WHEN p.stock_quantity < ? THEN 1 ELSE 0 END), 0) as low_stock
		`, lowStockThreshold).
		Scan(&products).Error
	if err != nil {
		return nil, err
	}

	var items int64
	err = r.db.WithContext(ctx).Table("stocks").
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return &report.CatalogSummary{
		TotalProducts:  products.TotalProducts,
		ActiveProducts: products.ActiveProducts,
		ItemsInStock:   items,
		LowStock:       products.LowStock,
	}, nil
}

// StockValueByCurrency sums price * stock_quantity per price currency
func (r *GormDashboardReader) StockValueByCurrency(ctx context.Context) ([]report.CurrencyValue, error) {
	type valueResult struct {
		Currency string
		Value    decimal.Decimal
	}

	var results []valueResult
	err := r.db.WithContext(ctx).Table("products p").
		Select("p.price_currency as currency, COALESCE(SUM(p.price * p.stock_quantity), 0) as value").
		Group("p.price_currency").
		Order("p.price_currency").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	values := make([]report.CurrencyValue, len(results))
	for i, res := range results {
		values[i] = report.CurrencyValue{Currency: res.Currency, Value: res.Value}
	}
	return values, nil
}

// TopCategories returns the categories with the most linked products
func (r *GormDashboardReader) TopCategories(ctx context.Context, limit int) ([]report.CategoryCount, error) {
	type countResult struct {
		Name  string
		Count int64
	}

	var results []countResult
	err := r.db.WithContext(ctx).Table("product_categories pc").
		Select("c.name as name, COUNT(pc.product_id) as count").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Group("c.id, c.name").
		Order("count DESC, c.name ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make([]report.CategoryCount, len(results))
	for i, res := range results {
		counts[i] = report.CategoryCount{Name: res.Name, Count: res.Count}
	}
	return counts, nil
}

var _ report.DashboardReader = (*GormDashboardReader)(nil)
