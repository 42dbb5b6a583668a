// Package exchange provides exchange-rate lookup, price conversion and rate refresh.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// storedRatePlaces matches the precision of the exchange_rates.value column
const storedRatePlaces = 6

// ProductFinder looks products up by SKU
type ProductFinder interface {
	FindBySKU(ctx context.Context, sku string) (*catalog.Product, error)
}

// RateInvalidator drops cached rates after a refresh
type RateInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ExchangeRateResponse is the rate between two currencies
type ExchangeRateResponse struct {
	Rate         float64 `json:"rate"`
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
}

// ConvertedPriceResponse is a product price in another currency
type ConvertedPriceResponse struct {
	Product string `json:"product"`
	Price   string `json:"price"`
}

// RateResponse is a stored rate
type RateResponse struct {
	Currency  string          `json:"currency"`
	Value     decimal.Decimal `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RateNotFoundError builds the not-found error for a currency without a stored rate
func RateNotFoundError(code string) *shared.DomainError {
	return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Exchange rate for %s not found.", code))
}

// RateService answers rate and conversion queries and refreshes stored rates
type RateService struct {
	repo      exchange.RateRepository
	source    exchange.RateSource
	converter *exchange.Converter
	products  ProductFinder
	provider  exchange.Provider
	cache     RateInvalidator
	logger    *zap.Logger
}

// NewRateService creates a new RateService. Reads go through source,
// which may be a cache in front of repo.
func NewRateService(
	repo exchange.RateRepository,
	source exchange.RateSource,
	products ProductFinder,
	base valueobject.Currency,
	logger *zap.Logger,
) *RateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == nil {
		source = repo
	}
	return &RateService{
		repo:      repo,
		source:    source,
		converter: exchange.NewConverter(base, source),
		products:  products,
		logger:    logger,
	}
}

// WithSync enables Sync with a rate provider and an optional cache to invalidate
func (s *RateService) WithSync(provider exchange.Provider, cache RateInvalidator) *RateService {
	s.provider = provider
	s.cache = cache
	return s
}

// Converter exposes the converter used for prices
func (s *RateService) Converter() *exchange.Converter {
	return s.converter
}

// GetRate returns how many units of to one unit of from buys.
// from defaults to the base currency.
func (s *RateService) GetRate(ctx context.Context, from, to string) (*ExchangeRateResponse, error) {
	if from == "" {
		from = s.converter.Base().String()
	}
	toCur, err := valueobject.ParseCurrency(to)
	if err != nil {
		return nil, RateNotFoundError(to)
	}
	fromCur, err := valueobject.ParseCurrency(from)
	if err != nil {
		return nil, RateNotFoundError(from)
	}

	for _, cur := range []valueobject.Currency{toCur, fromCur} {
		if err := s.ensureRate(ctx, cur); err != nil {
			return nil, err
		}
	}

	rate, err := s.converter.Rate(ctx, fromCur, toCur)
	if err != nil {
		return nil, err
	}
	return &ExchangeRateResponse{
		Rate:         rate.InexactFloat64(),
		FromCurrency: fromCur.String(),
		ToCurrency:   toCur.String(),
	}, nil
}

func (s *RateService) ensureRate(ctx context.Context, cur valueobject.Currency) error {
	if cur == s.converter.Base() {
		return nil
	}
	_, err := s.source.GetRate(ctx, cur)
	if errors.Is(err, exchange.ErrRateNotFound) {
		return RateNotFoundError(cur.String())
	}
	return err
}

// ConvertProductPrice converts the price of the product with sku into to
func (s *RateService) ConvertProductPrice(ctx context.Context, sku, to string) (*ConvertedPriceResponse, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	price, err := s.converter.Convert(ctx, product.Price, to)
	if err != nil {
		return nil, err
	}
	return &ConvertedPriceResponse{Product: product.Name, Price: price.Format()}, nil
}

// List returns every stored rate ordered by currency
func (s *RateService) List(ctx context.Context) ([]RateResponse, error) {
	rates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]RateResponse, len(rates))
	for i, r := range rates {
		responses[i] = RateResponse{Currency: r.Currency.String(), Value: r.Value, UpdatedAt: r.UpdatedAt}
	}
	return responses, nil
}

// Sync fetches the latest rates, stores them relative to the base
// currency and invalidates the cache. It returns the number of rates stored.
func (s *RateService) Sync(ctx context.Context) (int, error) {
	if s.provider == nil {
		return 0, errors.New("no exchange rate provider configured")
	}
	snapshot, err := s.provider.Latest(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch exchange rates: %w", err)
	}

	rates, err := s.rebase(snapshot)
	if err != nil {
		return 0, err
	}
	if err := s.repo.ReplaceAll(ctx, rates); err != nil {
		return 0, fmt.Errorf("store exchange rates: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate exchange rate cache", zap.Error(err))
		}
	}

	s.logger.Info("Exchange rates updated",
		zap.Int("count", len(rates)),
		zap.String("base", s.converter.Base().String()))
	return len(rates), nil
}

// rebase converts provider rates to the configured base currency and
// drops codes that are not ISO 4217 currencies
func (s *RateService) rebase(snapshot *exchange.Snapshot) ([]exchange.Rate, error) {
	base := s.converter.Base()
	divisor := decimal.NewFromInt(1)
	if snapshot.Base != base {
		v, ok := snapshot.Rates[base.String()]
		if !ok || v.IsZero() {
			return nil, fmt.Errorf("provider rates have no value for base currency %s", base)
		}
		divisor = v
	}

	fetched := snapshot.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}

	codes := make([]string, 0, len(snapshot.Rates))
	for code := range snapshot.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rates := make([]exchange.Rate, 0, len(codes))
	for _, code := range codes {
		cur, err := valueobject.ParseCurrency(code)
		if err != nil {
			s.logger.Debug("Skipping unknown currency", zap.String("currency", code))
			continue
		}
		if cur == base {
			continue
		}
		rates = append(rates, exchange.Rate{
			Currency:  cur,
			Value:     snapshot.Rates[code].DivRound(divisor, storedRatePlaces),
			UpdatedAt: fetched,
		})
	}
	return rates, nil
}
