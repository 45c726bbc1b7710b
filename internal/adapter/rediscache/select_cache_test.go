package rediscache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

type fakeStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

type countingUseCase struct {
	stubViews []port.AdView
	calls     int
}

func (c *countingUseCase) SelectAds(context.Context, port.SelectRequest) []port.AdView {
	c.calls++
	return c.stubViews
}

func (c *countingUseCase) RecordImpression(context.Context, int64) error { return nil }

func (c *countingUseCase) RecordClick(context.Context, int64, string, string) (string, error) {
	return "", nil
}

func (c *countingUseCase) ApplyOrder(context.Context, domain.EntityKind, []domain.OrderItem) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSelectCacheMissThenHit(t *testing.T) {
	inner := &countingUseCase{stubViews: []port.AdView{{ID: 1, Title: "t"}}}
	cache := New(inner, newFakeStore(), time.Minute, testLogger())
	req := port.SelectRequest{Page: domain.PageEvents, Placement: domain.PlacementBanner, Limit: 5}

	first := cache.SelectAds(context.Background(), req)
	require.Equal(t, 1, inner.calls)

	second := cache.SelectAds(context.Background(), req)
	require.Equal(t, 1, inner.calls, "second call must be served from cache")
	require.Equal(t, first, second)
}

func TestSelectCacheKeyedByRequest(t *testing.T) {
	inner := &countingUseCase{stubViews: []port.AdView{}}
	cache := New(inner, newFakeStore(), time.Minute, testLogger())

	cache.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageEvents, Limit: 5})
	cache.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageEvents, Placement: domain.PlacementBanner, Limit: 5})
	cache.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageEvents, Limit: 3})

	require.Equal(t, 3, inner.calls)
}

func TestSelectCacheFallsThroughOnRedisFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	store.setErr = store.getErr

	inner := &countingUseCase{stubViews: []port.AdView{{ID: 2}}}
	cache := New(inner, store, time.Minute, testLogger())
	req := port.SelectRequest{Page: domain.PageHomepage, Limit: 5}

	views := cache.SelectAds(context.Background(), req)
	require.Equal(t, inner.stubViews, views)

	cache.SelectAds(context.Background(), req)
	require.Equal(t, 2, inner.calls, "broken cache must not block selection")
}
