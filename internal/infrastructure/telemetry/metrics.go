package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/pimify/backend"

// Auth results recorded by Metrics.APIKeyAuth.
const (
	AuthAccepted = "accepted"
	AuthRejected = "rejected"
	AuthMissing  = "missing"
)

// Metrics holds the catalog counters exported by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	stockWrites  metric.Int64Counter
	apiKeyAuths  metric.Int64Counter
	imageUploads metric.Int64Counter
	imageBytes   metric.Int64Counter
	ratesSynced  metric.Int64Counter
	csvRows      metric.Int64Counter
}

// NewMetrics creates the instruments on meter, or on the global meter
// provider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	m := &Metrics{}
	var err error
	if m.stockWrites, err = meter.Int64Counter("pim.stock.writes",
		metric.WithDescription("Stock rows created or updated")); err != nil {
		return nil, err
	}
	if m.apiKeyAuths, err = meter.Int64Counter("pim.api_key.authentications",
		metric.WithDescription("Public API key checks by result")); err != nil {
		return nil, err
	}
	if m.imageUploads, err = meter.Int64Counter("pim.image.uploads",
		metric.WithDescription("Product images stored")); err != nil {
		return nil, err
	}
	if m.imageBytes, err = meter.Int64Counter("pim.image.bytes",
		metric.WithDescription("Bytes of product images stored"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.ratesSynced, err = meter.Int64Counter("pim.exchange.rates_synced",
		metric.WithDescription("Exchange rates written by a sync")); err != nil {
		return nil, err
	}
	if m.csvRows, err = meter.Int64Counter("pim.csv.rows",
		metric.WithDescription("Product CSV rows processed by direction and outcome")); err != nil {
		return nil, err
	}
	return m, nil
}

// StockWrite counts a stock mutation; op is "create", "update" or "delete".
func (m *Metrics) StockWrite(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.stockWrites.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}

// APIKeyAuth counts a public API authentication attempt.
func (m *Metrics) APIKeyAuth(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.apiKeyAuths.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// ImageUploaded counts a stored image and its size.
func (m *Metrics) ImageUploaded(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.imageUploads.Add(ctx, 1)
	if size > 0 {
		m.imageBytes.Add(ctx, size)
	}
}

// RatesSynced counts exchange rates written by one sync.
func (m *Metrics) RatesSynced(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ratesSynced.Add(ctx, int64(n))
}

// CSVRows counts processed CSV rows; direction is "import" or "export".
func (m *Metrics) CSVRows(ctx context.Context, direction string, ok, failed int) {
	if m == nil {
		return
	}
	dir := attribute.String("direction", direction)
	if ok > 0 {
		m.csvRows.Add(ctx, int64(ok), metric.WithAttributes(dir, attribute.String("outcome", "ok")))
	}
	if failed > 0 {
		m.csvRows.Add(ctx, int64(failed), metric.WithAttributes(dir, attribute.String("outcome", "failed")))
	}
}
