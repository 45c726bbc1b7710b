package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

type mockAdRepository struct {
	mock.Mock
}

func (m *mockAdRepository) ListEligible(ctx context.Context, q port.AdQuery) ([]domain.Ad, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]domain.Ad), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdRepository) IncrementImpressions(ctx context.Context, adID int64) error {
	return m.Called(ctx, adID).Error(0)
}

func (m *mockAdRepository) RegisterClick(ctx context.Context, ev domain.ClickEvent) (string, error) {
	args := m.Called(ctx, ev)
	return args.String(0), args.Error(1)
}

func (m *mockAdRepository) ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) error {
	return m.Called(ctx, kind, items).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeAd(id int64, page domain.Page, placement domain.Placement, slot int) domain.Ad {
	return domain.Ad{
		ID:           id,
		Title:        "ad",
		TargetURL:    "https://example.com",
		SlotPosition: slot,
		TargetPage:   page,
		Placement:    placement,
		Status:       domain.StatusActive,
	}
}

func TestSelectAdsOrdersBySlotThenID(t *testing.T) {
	repo := new(mockAdRepository)
	ads := []domain.Ad{
		activeAd(3, domain.PageEvents, domain.PlacementBanner, 2),
		activeAd(1, domain.PageEvents, domain.PlacementBanner, 2),
		activeAd(2, domain.PageEvents, domain.PlacementBanner, 1),
	}
	repo.On("ListEligible", mock.Anything, port.AdQuery{Page: domain.PageEvents, Placement: domain.PlacementBanner}).
		Return(ads, nil)

	svc := NewAdService(repo, testLogger())
	views := svc.SelectAds(context.Background(), port.SelectRequest{
		Page: domain.PageEvents, Placement: domain.PlacementBanner,
	})

	require.Len(t, views, 3)
	require.Equal(t, int64(2), views[0].ID)
	require.Equal(t, int64(1), views[1].ID) // slot tie broken by id
	require.Equal(t, int64(3), views[2].ID)
}

func TestSelectAdsWildcardPageComesFirstBySlot(t *testing.T) {
	repo := new(mockAdRepository)
	a := activeAd(10, domain.PageEvents, domain.PlacementBanner, 2)
	c := activeAd(11, domain.PageAll, domain.PlacementBanner, 1)
	b := activeAd(12, domain.PageEvents, domain.PlacementBanner, 1)
	b.Status = domain.StatusInactive
	repo.On("ListEligible", mock.Anything, mock.Anything).Return([]domain.Ad{a, c, b}, nil)

	svc := NewAdService(repo, testLogger())
	views := svc.SelectAds(context.Background(), port.SelectRequest{
		Page: domain.PageEvents, Placement: domain.PlacementBanner,
	})

	require.Len(t, views, 2)
	require.Equal(t, int64(11), views[0].ID)
	require.Equal(t, int64(10), views[1].ID)
}

func TestSelectAdsTruncatesToLimit(t *testing.T) {
	repo := new(mockAdRepository)
	var ads []domain.Ad
	for i := int64(1); i <= 7; i++ {
		ads = append(ads, activeAd(i, domain.PageHomepage, domain.PlacementBanner, int(i)))
	}
	repo.On("ListEligible", mock.Anything, mock.Anything).Return(ads, nil)

	svc := NewAdService(repo, testLogger())

	views := svc.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageHomepage, Limit: 2})
	require.Len(t, views, 2)
	require.Equal(t, int64(1), views[0].ID)

	// non-positive limit falls back to the default of 5
	views = svc.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageHomepage})
	require.Len(t, views, 5)
}

func TestSelectAdsSkipsOutsideDateWindow(t *testing.T) {
	repo := new(mockAdRepository)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := activeAd(1, domain.PageEvents, domain.PlacementBanner, 1)
	expired.EndDate = &past
	notYet := activeAd(2, domain.PageEvents, domain.PlacementBanner, 2)
	notYet.StartDate = &future
	open := activeAd(3, domain.PageEvents, domain.PlacementBanner, 3)
	boundary := activeAd(4, domain.PageEvents, domain.PlacementBanner, 4)
	boundary.StartDate = &now // inclusive bound
	boundary.EndDate = &now

	repo.On("ListEligible", mock.Anything, mock.Anything).
		Return([]domain.Ad{expired, notYet, open, boundary}, nil)

	svc := NewAdService(repo, testLogger())
	svc.now = func() time.Time { return now }

	views := svc.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageEvents})
	require.Len(t, views, 2)
	require.Equal(t, int64(3), views[0].ID)
	require.Equal(t, int64(4), views[1].ID)
}

func TestSelectAdsDegradesToEmptyOnStoreFailure(t *testing.T) {
	repo := new(mockAdRepository)
	repo.On("ListEligible", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewAdService(repo, testLogger())
	views := svc.SelectAds(context.Background(), port.SelectRequest{Page: domain.PageEvents})

	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestRecordClickHashesClientIP(t *testing.T) {
	repo := new(mockAdRepository)
	var captured domain.ClickEvent
	repo.On("RegisterClick", mock.Anything, mock.MatchedBy(func(ev domain.ClickEvent) bool {
		captured = ev
		return ev.AdID == 7
	})).Return("https://x.example", nil)

	svc := NewAdService(repo, testLogger())
	url, err := svc.RecordClick(context.Background(), 7, "1.2.3.4", "UA-X")

	require.NoError(t, err)
	require.Equal(t, "https://x.example", url)
	require.Equal(t, "UA-X", captured.UserAgent)
	require.NotEqual(t, "1.2.3.4", captured.IPHash)
	require.NotContains(t, captured.IPHash, "1.2.3.4")
	raw, err := hex.DecodeString(captured.IPHash)
	require.NoError(t, err)
	require.Len(t, raw, ipHashBytes)
}

func TestHashClientIPDistinctInputs(t *testing.T) {
	require.NotEqual(t, HashClientIP("1.2.3.4"), HashClientIP("1.2.3.5"))
	require.Equal(t, HashClientIP("1.2.3.4"), HashClientIP("1.2.3.4"))
}

func TestRecordClickNotFound(t *testing.T) {
	repo := new(mockAdRepository)
	repo.On("RegisterClick", mock.Anything, mock.Anything).Return("", port.ErrAdNotFound)

	svc := NewAdService(repo, testLogger())
	url, err := svc.RecordClick(context.Background(), 99, "1.2.3.4", "UA")

	require.ErrorIs(t, err, port.ErrAdNotFound)
	require.Empty(t, url)
}

func TestRecordImpressionDelegates(t *testing.T) {
	repo := new(mockAdRepository)
	repo.On("IncrementImpressions", mock.Anything, int64(3)).Return(nil).Once()
	repo.On("IncrementImpressions", mock.Anything, int64(4)).Return(port.ErrAdNotFound).Once()

	svc := NewAdService(repo, testLogger())
	require.NoError(t, svc.RecordImpression(context.Background(), 3))
	require.ErrorIs(t, svc.RecordImpression(context.Background(), 4), port.ErrAdNotFound)
	repo.AssertExpectations(t)
}

func TestApplyOrderRejectsBadInput(t *testing.T) {
	repo := new(mockAdRepository)
	svc := NewAdService(repo, testLogger())

	err := svc.ApplyOrder(context.Background(), domain.KindAd, nil)
	require.Error(t, err)

	err = svc.ApplyOrder(context.Background(), domain.EntityKind("banner"), []domain.OrderItem{{ID: 1, Position: 1}})
	require.Error(t, err)

	repo.AssertNotCalled(t, "ApplyOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyOrderIsIdempotent(t *testing.T) {
	repo := new(mockAdRepository)
	positions := map[int64]int{1: 1, 2: 2}
	repo.On("ApplyOrder", mock.Anything, domain.KindAd, mock.Anything).
		Run(func(args mock.Arguments) {
			for _, item := range args.Get(2).([]domain.OrderItem) {
				positions[item.ID] = item.Position
			}
		}).Return(nil)

	svc := NewAdService(repo, testLogger())
	items := []domain.OrderItem{{ID: 1, Position: 5}, {ID: 2, Position: 1}}

	require.NoError(t, svc.ApplyOrder(context.Background(), domain.KindAd, items))
	once := map[int64]int{1: positions[1], 2: positions[2]}

	require.NoError(t, svc.ApplyOrder(context.Background(), domain.KindAd, items))
	require.Equal(t, once, positions)
	require.Equal(t, map[int64]int{1: 5, 2: 1}, positions)
}
