package models

import (
	"time"

	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExchangeRateModel stores the value of one base-currency unit in Currency
type ExchangeRateModel struct {
	Currency  string          `gorm:"type:varchar(3);primaryKey"`
	Value     decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain Rate.
func (m *ExchangeRateModel) ToDomain() exchange.Rate {
	return exchange.Rate{
		Currency:  valueobject.Currency(m.Currency),
		Value:     m.Value,
		UpdatedAt: m.UpdatedAt,
	}
}

// ExchangeRateModelFromDomain creates a new persistence model from a domain Rate.
func ExchangeRateModelFromDomain(r exchange.Rate) *ExchangeRateModel {
	return &ExchangeRateModel{
		Currency:  r.Currency.String(),
		Value:     r.Value,
		UpdatedAt: r.UpdatedAt,
	}
}
