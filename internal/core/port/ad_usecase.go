package port

import (
	"context"
	"encoding/json"

	"city-ads/internal/core/domain"
)

// AdUseCase defines the business operations exposed by the ad engine.
// This interface represents the primary port into the application
// domain; the HTTP adapter and the cache decorator both speak it.
type AdUseCase interface {
	// SelectAds returns the eligible, relevant ads for a page ordered by
	// slot position (id as tie-break) and truncated to the request
	// limit. It never fails: a store error degrades to an empty result
	// so a broken ad fetch cannot break a page render.
	SelectAds(ctx context.Context, req SelectRequest) []AdView

	// RecordImpression increments the ad's impression counter. Every
	// call counts; deduplication is the caller's concern.
	RecordImpression(ctx context.Context, adID int64) error

	// RecordClick hashes the client IP, records the click and returns
	// the ad's target URL for the redirect. The raw IP is never
	// persisted or logged.
	RecordClick(ctx context.Context, adID int64, clientIP, userAgent string) (string, error)

	// ApplyOrder resequences records of the given kind. Idempotent:
	// re-applying the same items converges to the same final order.
	ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) error
}

// SelectRequest carries the parameters of one selection call. An empty
// Placement means any; a non-positive Limit falls back to the default.
type SelectRequest struct {
	Page      domain.Page
	Placement domain.Placement
	Limit     int
}

// AdView is the public-safe projection of an ad returned to external
// callers. Counters and admin-only fields are deliberately absent;
// this projection is a contract of the delivery API.
type AdView struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle"`
	CTAText        string          `json:"cta_text"`
	ImageURL       string          `json:"image_url"`
	TargetURL      string          `json:"target_url"`
	AdvertiserName string          `json:"advertiser_name"`
	SlotPosition   int             `json:"slot_position"`
	ImageSettings  json.RawMessage `json:"image_settings,omitempty"`
}
