// Package exchange holds exchange rates and currency conversion.
package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Rate is the value of one base-currency unit in Currency
type Rate struct {
	Currency  valueobject.Currency
	Value     decimal.Decimal
	UpdatedAt time.Time
}

// ErrRateNotFound is returned by rate sources when a currency has no stored rate
var ErrRateNotFound = errors.New("rate not found")

// RateSource looks up stored rates keyed by currency code
type RateSource interface {
	// GetRate returns the rate for cur or ErrRateNotFound
	GetRate(ctx context.Context, cur valueobject.Currency) (Rate, error)
}

// RateRepository persists rates
type RateRepository interface {
	RateSource
	List(ctx context.Context) ([]Rate, error)
	// ReplaceAll upserts every rate in one transaction
	ReplaceAll(ctx context.Context, rates []Rate) error
}

// Snapshot is a full set of rates published by a provider
type Snapshot struct {
	Base      valueobject.Currency
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// Provider fetches the latest published rates
type Provider interface {
	Latest(ctx context.Context) (*Snapshot, error)
}
