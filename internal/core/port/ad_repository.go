package port

import (
	"context"
	"errors"

	"city-ads/internal/core/domain"
)

// ErrAdNotFound is returned when a tracking call references an ad id
// that does not exist. No mutation happens in that case.
var ErrAdNotFound = errors.New("ad not found")

// ErrEntityNotFound is returned by reordering when one of the supplied
// ids does not reference an existing record of the target kind.
var ErrEntityNotFound = errors.New("entity not found")

// AdQuery narrows the candidate set returned by ListEligible. An empty
// Placement means any placement.
type AdQuery struct {
	Page      domain.Page
	Placement domain.Placement
}

// AdRepository defines the persistence layer for the ad engine. It is
// an outbound port in hexagonal architecture. Implementations must
// perform counter increments atomically at the store so concurrent
// tracking calls cannot lose updates.
type AdRepository interface {
	// ListEligible returns active ads inside their date window that are
	// relevant to the query. Ordering of the result is unspecified; the
	// usecase sorts.
	ListEligible(ctx context.Context, q AdQuery) ([]domain.Ad, error)

	// IncrementImpressions adds one to the ad's impression counter.
	// Returns ErrAdNotFound when the id does not exist.
	IncrementImpressions(ctx context.Context, adID int64) error

	// RegisterClick increments the ad's click counter, journals the
	// event and returns the ad's target URL in a single transaction.
	// Returns ErrAdNotFound when the id does not exist.
	RegisterClick(ctx context.Context, ev domain.ClickEvent) (string, error)

	// ApplyOrder updates the order field of each listed record of the
	// given kind, all inside one transaction. Returns ErrEntityNotFound
	// when any id is missing; no positions are changed in that case.
	ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) error
}
