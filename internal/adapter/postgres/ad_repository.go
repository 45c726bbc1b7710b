package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

// AdRepository implements port.AdRepository using pgxpool for
// PostgreSQL. Counter increments run as single UPDATE statements so the
// store is the point of serialization; reordering runs in one
// transaction.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

// orderTarget maps a reorderable entity kind to its table and order
// column. The whitelist also keeps identifiers out of reach of request
// data.
type orderTarget struct {
	table  string
	column string
}

var orderTargets = map[domain.EntityKind]orderTarget{
	domain.KindAd:      {table: "ads", column: "slot_position"},
	domain.KindTrailer: {table: "trailers", column: "display_order"},
	domain.KindMovie:   {table: "movies", column: "display_order"},
}

// ListEligible returns active ads inside their date window that target
// the requested page directly or via the 'all' wildcard. An empty
// placement matches any.
func (r *AdRepository) ListEligible(ctx context.Context, q port.AdQuery) ([]domain.Ad, error) {
	const query = `
        SELECT
            id, title, subtitle, cta_text, image_url, image_settings,
            target_url, advertiser_name, slot_position, target_page,
            placement, status, start_date, end_date,
            impression_count, click_count, created_at, updated_at
        FROM ads
        WHERE status = 'active'
          AND (start_date IS NULL OR start_date <= now())
          AND (end_date IS NULL OR end_date >= now())
          AND (target_page = $1 OR target_page = 'all')
          AND ($2 = '' OR placement = $2)`

	rows, err := r.pool.Query(ctx, query, string(q.Page), string(q.Placement))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
		var a domain.Ad
		err := row.Scan(
			&a.ID,
			&a.Title,
			&a.Subtitle,
			&a.CTAText,
			&a.ImageURL,
			&a.ImageSettings,
			&a.TargetURL,
			&a.AdvertiserName,
			&a.SlotPosition,
			&a.TargetPage,
			&a.Placement,
			&a.Status,
			&a.StartDate,
			&a.EndDate,
			&a.ImpressionCount,
			&a.ClickCount,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		return a, err
	})
}

// IncrementImpressions atomically adds one to the impression counter.
func (r *AdRepository) IncrementImpressions(ctx context.Context, adID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET impression_count = impression_count + 1, updated_at = now() WHERE id = $1`, adID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrAdNotFound
	}
	return nil
}

// RegisterClick increments the click counter, journals the event and
// returns the ad's target URL, all in one transaction.
func (r *AdRepository) RegisterClick(ctx context.Context, ev domain.ClickEvent) (targetURL string, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`UPDATE ads SET click_count = click_count + 1, updated_at = now() WHERE id = $1 RETURNING target_url`,
		ev.AdID).Scan(&targetURL)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrAdNotFound
		return "", err
	}
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO click_events (id, ad_id, ip_hash, user_agent, created_at) VALUES ($1, $2, $3, $4, now())`,
		ev.ID, ev.AdID, ev.IPHash, ev.UserAgent)
	if err != nil {
		return "", err
	}
	return targetURL, nil
}

// ApplyOrder sets the order field of each listed record inside a single
// transaction. Any unknown id rolls the whole request back with
// ErrEntityNotFound, so a partial order is never persisted. Re-applying
// the same items is a no-op beyond the updated_at touch.
func (r *AdRepository) ApplyOrder(ctx context.Context, kind domain.EntityKind, items []domain.OrderItem) (err error) {
	target, ok := orderTargets[kind]
	if !ok {
		return fmt.Errorf("no order target for entity kind %q", kind)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, updated_at = now() WHERE id = $2`, target.table, target.column)
	for _, item := range items {
		var tag pgconn.CommandTag
		tag, err = tx.Exec(ctx, query, item.Position, item.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			err = fmt.Errorf("%w: %s id %d", port.ErrEntityNotFound, kind, item.ID)
			return err
		}
	}
	return nil
}
