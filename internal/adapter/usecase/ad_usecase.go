package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

// ipHashBytes is the truncated length of the client-IP digest. 16 bytes
// of SHA-256 keeps the value fixed-length and one-way while staying
// short enough for an indexed column.
const ipHashBytes = 16

// defaultLimit caps a selection when the caller does not supply a
// positive limit.
const defaultLimit = 5

// AdService provides business logic for ad selection, tracking and
// admin reordering. It orchestrates the repository to implement the
// AdUseCase interface.
type AdService struct {
	repo   port.AdRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAdService creates a service backed by the given repository.
func NewAdService(repo port.AdRepository, logger *slog.Logger) *AdService {
	return &AdService{repo: repo, logger: logger, now: time.Now}
}

// SelectAds returns the ads to render for a page. Candidates from the
// store are re-checked against the domain predicates, sorted by slot
// position with the id as a deterministic tie-break, and truncated to
// the limit. A store failure degrades to an empty result; the error is
// logged, never surfaced, so the page render is unaffected.
func (s *AdService) SelectAds(ctx context.Context, req port.SelectRequest) []port.AdView {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	candidates, err := s.repo.ListEligible(ctx, port.AdQuery{Page: req.Page, Placement: req.Placement})
	if err != nil {
		s.logger.Warn("ad selection degraded to empty", slog.Any("error", err),
			slog.String("page", string(req.Page)), slog.String("placement", string(req.Placement)))
		return []port.AdView{}
	}

	now := s.now()
	ads := candidates[:0]
	for i := range candidates {
		a := &candidates[i]
		if a.EligibleAt(now) && a.RelevantTo(req.Page) && a.MatchesPlacement(req.Placement) {
			ads = append(ads, *a)
		}
	}

	sort.Slice(ads, func(i, j int) bool {
		if ads[i].SlotPosition != ads[j].SlotPosition {
			return ads[i].SlotPosition < ads[j].SlotPosition
		}
		return ads[i].ID < ads[j].ID
	})
	if len(ads) > limit {
		ads = ads[:limit]
	}

	views := make([]port.AdView, 0, len(ads))
	for _, a := range ads {
		views = append(views, port.AdView{
			ID:             a.ID,
			Title:          a.Title,
			Subtitle:       a.Subtitle,
			CTAText:        a.CTAText,
			ImageURL:       a.ImageURL,
			TargetURL:      a.TargetURL,
			AdvertiserName: a.AdvertiserName,
			SlotPosition:   a.SlotPosition,
			ImageSettings:  a.ImageSettings,
		})
	}
	return views
}

// RecordImpression increments the impression counter of an existing ad.
func (s *AdService) RecordImpression(ctx context.Context, adID int64) error {
	return s.repo.IncrementImpressions(ctx, adID)
}

// RecordClick records a click against an ad and returns its target URL
// for the redirect. The client IP is reduced to a truncated digest
// before it reaches the repository; the raw address is never stored or
// logged.
func (s *AdService) RecordClick(ctx context.Context, adID int64, clientIP, userAgent string) (string, error) {
	ev := domain.ClickEvent{
		ID:        uuid.New(),
		AdID:      adID,
		IPHash:    HashClientIP(clientIP),
		UserAgent: userAgent,
	}
	targetURL, err := s.repo.RegisterClick(ctx, ev)
	if err != nil {
		return "", err
	}
	return targetURL, nil
}

// ApplyOrder validates and applies an admin reordering request. The
// repository runs all updates in one transaction, so a partial order is
// never persisted.
func (s *AdService) ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) error {
	if _, ok := domain.ParseEntityKind(string(kind)); !ok {
		return errors.New("unknown entity kind")
	}
	if len(items) == 0 {
		return errors.New("empty order list")
	}
	return s.repo.ApplyOrder(ctx, kind, items)
}

// HashClientIP returns the fixed-length, one-way digest under which a
// client address is persisted. Distinct inputs yield distinct digests
// with overwhelming probability; the input is not recoverable.
func HashClientIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:ipHashBytes])
}
