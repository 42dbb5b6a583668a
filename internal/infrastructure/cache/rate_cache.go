package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultRateKeyPrefix = "pim:rate:"
	defaultRateTTL       = time.Hour
	invalidateScanCount  = 100
)

// RateCache is a read-through redis cache in front of a rate source.
// Redis failures degrade to reading the source directly.
type RateCache struct {
	client    *redis.Client
	next      exchange.RateSource
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// Ensure RateCache is a rate source
var _ exchange.RateSource = (*RateCache)(nil)

// RateCacheOption configures a RateCache
type RateCacheOption func(*RateCache)

// WithKeyPrefix overrides the redis key prefix
func WithKeyPrefix(prefix string) RateCacheOption {
	return func(c *RateCache) {
		c.keyPrefix = prefix
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RateCacheOption {
	return func(c *RateCache) {
		c.logger = logger
	}
}

// NewRateCache creates a cache over next with the given TTL
func NewRateCache(client *redis.Client, next exchange.RateSource, ttl time.Duration, opts ...RateCacheOption) *RateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	c := &RateCache{
		client:    client,
		next:      next,
		ttl:       ttl,
		keyPrefix: defaultRateKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRate returns the cached rate or loads and caches it from the source.
// Missing rates are not cached.
func (c *RateCache) GetRate(ctx context.Context, cur valueobject.Currency) (exchange.Rate, error) {
	key := c.keyPrefix + cur.String()

	fields, err := c.client.HGetAll(ctx, key).Result()
	switch {
	case err != nil:
		c.logger.Warn("Rate cache read failed", zap.String("key", key), zap.Error(err))
	case len(fields) > 0:
		rate, err := decodeRate(cur, fields)
		if err == nil {
			return rate, nil
		}
		c.logger.Warn("Discarding malformed cached rate", zap.String("key", key), zap.Error(err))
	}

	rate, err := c.next.GetRate(ctx, cur)
	if err != nil {
		return exchange.Rate{}, err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"value", rate.Value.String(),
			"updated_at", strconv.FormatInt(rate.UpdatedAt.UnixNano(), 10))
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		c.logger.Warn("Rate cache write failed", zap.String("key", key), zap.Error(err))
	}
	return rate, nil
}

// Invalidate drops every cached rate
func (c *RateCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", invalidateScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached rates: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete cached rates: %w", err)
	}
	return nil
}

func decodeRate(cur valueobject.Currency, fields map[string]string) (exchange.Rate, error) {
	raw, ok := fields["value"]
	if !ok {
		return exchange.Rate{}, errors.New("missing value")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return exchange.Rate{}, err
	}
	rate := exchange.Rate{Currency: cur, Value: value}
	if ts, ok := fields["updated_at"]; ok {
		nanos, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return exchange.Rate{}, err
		}
		rate.UpdatedAt = time.Unix(0, nanos).UTC()
	}
	return rate, nil
}
