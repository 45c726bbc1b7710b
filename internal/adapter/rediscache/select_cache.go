package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

// store is the subset of the go-redis client the cache needs. Narrowed
// so tests can substitute a fake.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// SelectCache decorates an AdUseCase with a short-TTL Redis cache over
// SelectAds, keyed by (page, placement, limit). Staleness up to the TTL
// is acceptable by contract; every other operation passes straight
// through. Any Redis failure falls back to the inner usecase.
type SelectCache struct {
	inner  port.AdUseCase
	rdb    store
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps the inner usecase with a selection cache.
func New(inner port.AdUseCase, rdb store, ttl time.Duration, logger *slog.Logger) *SelectCache {
	return &SelectCache{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// SelectAds serves a cached result when present, otherwise delegates
// and stores the outcome for the configured TTL.
func (c *SelectCache) SelectAds(ctx context.Context, req port.SelectRequest) []port.AdView {
	key := selectKey(req)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var views []port.AdView
		if jsonErr := json.Unmarshal(raw, &views); jsonErr == nil {
			return views
		}
		// corrupt entry, fall through and overwrite
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("ad cache read failed", slog.Any("error", err), slog.String("key", key))
	}

	views := c.inner.SelectAds(ctx, req)
	if raw, err := json.Marshal(views); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("ad cache write failed", slog.Any("error", err), slog.String("key", key))
		}
	}
	return views
}

// RecordImpression passes through to the inner usecase.
func (c *SelectCache) RecordImpression(ctx context.Context, adID int64) error {
	return c.inner.RecordImpression(ctx, adID)
}

// RecordClick passes through to the inner usecase.
func (c *SelectCache) RecordClick(ctx context.Context, adID int64, clientIP, userAgent string) (string, error) {
	return c.inner.RecordClick(ctx, adID, clientIP, userAgent)
}

// ApplyOrder passes through to the inner usecase. Cached selections may
// show the previous order until they expire; eventual consistency of
// display order is acceptable.
func (c *SelectCache) ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) error {
	return c.inner.ApplyOrder(ctx, kind, items)
}

func selectKey(req port.SelectRequest) string {
	return fmt.Sprintf("ads:%s:%s:%d", req.Page, req.Placement, req.Limit)
}
