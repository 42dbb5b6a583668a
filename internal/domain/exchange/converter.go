package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// rateDivisionPrecision is the number of places kept when deriving cross rates
const rateDivisionPrecision = 10

// Converter converts money between currencies using rates relative to a base currency
type Converter struct {
	base   valueobject.Currency
	source RateSource
}

// NewConverter creates a converter; the base currency has an implicit rate of 1
func NewConverter(base valueobject.Currency, source RateSource) *Converter {
	if base == "" {
		base = valueobject.DefaultCurrency
	}
	return &Converter{base: base, source: source}
}

// Base returns the base currency
func (c *Converter) Base() valueobject.Currency {
	return c.base
}

// Rate returns how many units of to one unit of from buys.
// Errors are shared.ErrConversionFailed wrapping the cause.
func (c *Converter) Rate(ctx context.Context, from, to valueobject.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	fromValue, err := c.valueOf(ctx, from, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	toValue, err := c.valueOf(ctx, to, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if fromValue.IsZero() {
		return decimal.Zero, shared.ErrConversionFailed.Wrap(fmt.Errorf("rate %s -> %s is zero", from, to))
	}
	return toValue.DivRound(fromValue, rateDivisionPrecision), nil
}

// Convert converts amount into target, rounded to two places
func (c *Converter) Convert(ctx context.Context, amount valueobject.Money, target string) (valueobject.Money, error) {
	to, err := valueobject.ParseCurrency(target)
	if err != nil {
		return valueobject.Money{}, shared.ErrConversionFailed.Wrap(err)
	}
	if amount.Currency() == to {
		return amount, nil
	}
	rate, err := c.Rate(ctx, amount.Currency(), to)
	if err != nil {
		return valueobject.Money{}, err
	}
	return amount.MultiplyBy(rate).Round(valueobject.MoneyPlaces).In(to), nil
}

func (c *Converter) valueOf(ctx context.Context, cur, from, to valueobject.Currency) (decimal.Decimal, error) {
	if cur == c.base {
		return decimal.NewFromInt(1), nil
	}
	rate, err := c.source.GetRate(ctx, cur)
	if err != nil {
		if errors.Is(err, ErrRateNotFound) || errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, shared.ErrConversionFailed.Wrap(fmt.Errorf("rate %s -> %s does not exist", from, to))
		}
		return decimal.Zero, shared.ErrConversionFailed.Wrap(err)
	}
	return rate.Value, nil
}
