package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo ads, trailers and movies for local development.
// Inserts are conflict-tolerant so repeated startups stay clean.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	pages := []string{"homepage", "events", "venues", "movies", "artists", "all"}
	placements := []string{"banner", "slider"}

	id := 0
	for _, page := range pages {
		for _, placement := range placements {
			for slot := 1; slot <= 3; slot++ {
				id++
				title := fmt.Sprintf("Demo ad %d", id)
				subtitle := fmt.Sprintf("%s %s slot %d", page, placement, slot)
				imageURL := fmt.Sprintf("https://example.com/creative/%d.jpg", id)
				targetURL := fmt.Sprintf("https://example.com/landing/%d", id)
				advertiser := fmt.Sprintf("Advertiser %d", (id-1)%7+1)
				status := "active"
				if slot == 3 {
					status = "inactive"
				}
				start := time.Now().AddDate(0, 0, -1)
				end := time.Now().AddDate(0, 1, 0)
				_, err := db.Exec(ctx, `INSERT INTO ads
    (id, title, subtitle, cta_text, image_url, image_settings, target_url, advertiser_name,
     slot_position, target_page, placement, status, start_date, end_date, created_at, updated_at)
VALUES ($1,$2,$3,'Learn more',$4,'{}',$5,$6,$7,$8,$9,$10,$11,$12,now(),now()) ON CONFLICT DO NOTHING`,
					id, title, subtitle, imageURL, targetURL, advertiser, slot, page, placement, status, start, end)
				if err != nil {
					return err
				}
			}
		}
	}
	if _, err := db.Exec(ctx, `SELECT setval(pg_get_serial_sequence('ads','id'), (SELECT max(id) FROM ads))`); err != nil {
		return err
	}

	for i := 1; i <= 5; i++ {
		_, err := db.Exec(ctx, `INSERT INTO trailers (id, title, video_url, display_order, updated_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`,
			i, fmt.Sprintf("Trailer %d", i), fmt.Sprintf("https://example.com/trailer/%d.mp4", i), i)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `INSERT INTO movies (id, title, poster_url, display_order, updated_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`,
			i, fmt.Sprintf("Movie %d", i), fmt.Sprintf("https://example.com/poster/%d.jpg", i), i)
		if err != nil {
			return err
		}
	}
	if _, err := db.Exec(ctx, `SELECT setval(pg_get_serial_sequence('trailers','id'), (SELECT max(id) FROM trailers))`); err != nil {
		return err
	}
	if _, err := db.Exec(ctx, `SELECT setval(pg_get_serial_sequence('movies','id'), (SELECT max(id) FROM movies))`); err != nil {
		return err
	}
	return nil
}
