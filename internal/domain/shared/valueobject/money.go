package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	JPY Currency = "JPY" // Japanese Yen
)

// DefaultCurrency is the default currency for product prices
const DefaultCurrency = USD

// MoneyPlaces is the number of decimal places stored for prices
const MoneyPlaces = 2

// ErrInvalidCurrency is returned for codes that are not ISO 4217 currencies
var ErrInvalidCurrency = errors.New("invalid currency code")

// ParseCurrency normalises and validates an ISO 4217 code
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCurrency)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}
	return Currency(unit.String()), nil
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}

// Money is a value object representing monetary amounts.
// It is immutable; all operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: cur,
	}, nil
}

// MustMoney is NewMoney for constants and tests
func MustMoney(amount string, cur Currency) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d, cur)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string, cur Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, cur)
}

// Zero returns a zero-value Money in the specified currency
func Zero(cur Currency) Money {
	return Money{amount: decimal.Zero, currency: cur}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// MultiplyBy returns the amount scaled by factor, in the same currency
func (m Money) MultiplyBy(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Round rounds half away from zero to the given places
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// In returns the same amount relabelled with another currency
func (m Money) In(cur Currency) Money {
	return Money{amount: m.amount, currency: cur}
}

// Equals compares amount and currency
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Format renders the amount with the currency's symbol and separators,
// e.g. "$1,234.50" or "€85.00". Unknown codes render as "85.00 XYZ".
func (m Money) Format() string {
	loc, ok := accounting.LocaleInfo[string(m.currency)]
	if !ok {
		return m.amount.StringFixed(MoneyPlaces) + " " + string(m.currency)
	}
	ac := &accounting.Accounting{
		Symbol:    loc.ComSymbol,
		Precision: MoneyPlaces,
		Thousand:  loc.ThouSep,
		Decimal:   loc.DecSep,
	}
	if !loc.Pre {
		ac.Format = "%v" + loc.SpaceSep + "%s"
	} else if loc.SpaceSep != "" {
		ac.Format = "%s" + loc.SpaceSep + "%v"
	}
	return ac.FormatMoneyDecimal(m.amount)
}

// String implements fmt.Stringer
func (m Money) String() string {
	return m.Format()
}
