// Package exchange fetches published exchange rates.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// DefaultURL is the OpenExchangeRates latest-rates endpoint
const DefaultURL = "https://openexchangerates.org/api/latest.json"

const maxResponseSize = 1 << 20

// ErrProviderUnavailable is returned when the provider cannot be reached or answers with an error
var ErrProviderUnavailable = errors.New("exchange rate provider unavailable")

// Ensure OpenExchangeRatesClient is a rate provider
var _ exchange.Provider = (*OpenExchangeRatesClient)(nil)

// OpenExchangeRatesClient fetches the latest rates from openexchangerates.org
type OpenExchangeRatesClient struct {
	appID      string
	endpoint   string
	httpClient *http.Client
}

type latestResponse struct {
	Timestamp int64                      `json:"timestamp"`
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

type errorResponse struct {
	Status      int    `json:"status"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// NewOpenExchangeRatesClient creates a client from configuration
func NewOpenExchangeRatesClient(cfg config.ExchangeConfig) (*OpenExchangeRatesClient, error) {
	if cfg.AppID == "" {
		return nil, errors.New("exchange app_id is required")
	}
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid exchange url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenExchangeRatesClient{
		appID:      cfg.AppID,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Latest fetches the current rates
func (c *OpenExchangeRatesClient) Latest(ctx context.Context) (*exchange.Snapshot, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid exchange url: %w", err)
	}
	q := u.Query()
	q.Set("app_id", c.appID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("openexchangerates: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("openexchangerates: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: HTTP %d %s: %s", ErrProviderUnavailable, resp.StatusCode, apiErr.Message, apiErr.Description)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var latest latestResponse
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("openexchangerates: failed to decode response: %w", err)
	}
	if len(latest.Rates) == 0 {
		return nil, errors.New("openexchangerates: response has no rates")
	}

	base, err := valueobject.ParseCurrency(latest.Base)
	if err != nil {
		return nil, fmt.Errorf("openexchangerates: %w", err)
	}

	snapshot := &exchange.Snapshot{Base: base, Rates: latest.Rates, FetchedAt: time.Now().UTC()}
	if latest.Timestamp > 0 {
		snapshot.FetchedAt = time.Unix(latest.Timestamp, 0).UTC()
	}
	return snapshot, nil
}
