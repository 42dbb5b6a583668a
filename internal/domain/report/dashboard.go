// Package report holds read models for back-office reporting.
package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock quantity below which a product needs attention
const LowStockThreshold = 10

// CatalogSummary holds product and stock counters
type CatalogSummary struct {
	TotalProducts  int64
	ActiveProducts int64
	ItemsInStock   int64
	LowStock       int64
}

// CurrencyValue is the stock value of all products priced in one currency
type CurrencyValue struct {
	Currency string
	Value    decimal.Decimal
}

// CategoryCount is the number of products linked to a category
type CategoryCount struct {
	Name  string
	Count int64
}

// DashboardReader reads dashboard aggregates
type DashboardReader interface {
	CatalogSummary(ctx context.Context, lowStockThreshold int) (*CatalogSummary, error)
	// StockValueByCurrency sums price * stock_quantity grouped by price currency
	StockValueByCurrency(ctx context.Context) ([]CurrencyValue, error)
	// TopCategories returns up to limit categories ordered by product count
	TopCategories(ctx context.Context, limit int) ([]CategoryCount, error)
}
