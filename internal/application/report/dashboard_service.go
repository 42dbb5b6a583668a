// Package report provides back-office reporting use cases.
package report

import (
	"context"

	"github.com/pimify/backend/internal/domain/report"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// topCategoryLimit is the number of categories shown on the dashboard
const topCategoryLimit = 3

// MoneyConverter converts prices into the base currency
type MoneyConverter interface {
	Base() valueobject.Currency
	Convert(ctx context.Context, amount valueobject.Money, target string) (valueobject.Money, error)
}

// CategoryShare is a category's share of the catalog
type CategoryShare struct {
	Name    string `json:"name"`
	Count   int64  `json:"count"`
	Percent int    `json:"percent"`
}

// DashboardResponse holds the back-office KPIs
type DashboardResponse struct {
	TotalProducts   int64           `json:"total_products"`
	ActiveProducts  int64           `json:"active_products"`
	TotalStockValue string          `json:"total_stock_value"`
	StockValue      decimal.Decimal `json:"stock_value"`
	Currency        string          `json:"currency"`
	ItemsInStock    int64           `json:"items_in_stock"`
	LowStock        int64           `json:"low_stock"`
	TopCategories   []CategoryShare `json:"top_categories"`
	// Unconverted lists currencies whose stock value could not be converted
	Unconverted []string `json:"unconverted,omitempty"`
}

// DashboardService builds dashboard KPIs
type DashboardService struct {
	reader    report.DashboardReader
	converter MoneyConverter
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(reader report.DashboardReader, converter MoneyConverter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{reader: reader, converter: converter, logger: logger}
}

// Summary returns product counters, stock value in the base currency and the top categories
func (s *DashboardService) Summary(ctx context.Context) (*DashboardResponse, error) {
	summary, err := s.reader.CatalogSummary(ctx, report.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	values, err := s.reader.StockValueByCurrency(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.reader.TopCategories(ctx, topCategoryLimit)
	if err != nil {
		return nil, err
	}

	total, unconverted := s.stockValue(ctx, values)

	shares := make([]CategoryShare, len(categories))
	for i, c := range categories {
		shares[i] = CategoryShare{Name: c.Name, Count: c.Count}
		if summary.TotalProducts > 0 {
			shares[i].Percent = int(c.Count * 100 / summary.TotalProducts)
		}
	}

	return &DashboardResponse{
		TotalProducts:   summary.TotalProducts,
		ActiveProducts:  summary.ActiveProducts,
		TotalStockValue: total.Format(),
		StockValue:      total.Amount(),
		Currency:        total.Currency().String(),
		ItemsInStock:    summary.ItemsInStock,
		LowStock:        summary.LowStock,
		TopCategories:   shares,
		Unconverted:     unconverted,
	}, nil
}

func (s *DashboardService) stockValue(ctx context.Context, values []report.CurrencyValue) (valueobject.Money, []string) {
	base := s.converter.Base()
	total := decimal.Zero
	var unconverted []string
	for _, v := range values {
		cur := valueobject.Currency(v.Currency)
		if cur == "" {
			cur = valueobject.DefaultCurrency
		}
		amount, err := valueobject.NewMoney(v.Value, cur)
		if err != nil {
			unconverted = append(unconverted, v.Currency)
			continue
		}
		converted, err := s.converter.Convert(ctx, amount, base.String())
		if err != nil {
			s.logger.Warn("Stock value not converted",
				zap.String("currency", v.Currency),
				zap.Error(err))
			unconverted = append(unconverted, v.Currency)
			continue
		}
		total = total.Add(converted.Amount())
	}
	sum, _ := valueobject.NewMoney(total.Round(valueobject.MoneyPlaces), base)
	return sum, unconverted
}
