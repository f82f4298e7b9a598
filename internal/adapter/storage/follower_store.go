// internal/adapter/storage/follower_store.go

package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"bitescout/internal/domain/engagement"
)

// FollowerStore implements durable storage for follower-count samples
type FollowerStore struct {
	db *pgxpool.Pool
}

// NewFollowerStore creates a new follower store
func NewFollowerStore(db *pgxpool.Pool) *FollowerStore {
	return &FollowerStore{
		db: db,
	}
}

// UpsertSample writes a dated follower sample. One row is kept per
// (brand, date); a rerun for the same date replaces the count.
func (s *FollowerStore) UpsertSample(ctx context.Context, sample engagement.FollowerSample) error {
	if sample.Count < 0 {
		return fmt.Errorf("%w: negative count %d", engagement.ErrInvalidSample, sample.Count)
	}
	if sample.Date.IsZero() {
		return fmt.Errorf("%w: zero date", engagement.ErrInvalidSample)
	}

	query := `
		INSERT INTO instagram_followers (brand_id, date, followers)
		VALUES ($1, $2, $3)
		ON CONFLICT (brand_id, date) DO UPDATE
		SET followers = $3
	`

	_, err := s.db.Exec(ctx, query, sample.BrandID, sample.Date, sample.Count)
	if err != nil {
		return fmt.Errorf("error upserting follower sample: %w", err)
	}

	return nil
}

// ListSamples returns a brand's follower samples, oldest first
func (s *FollowerStore) ListSamples(ctx context.Context, brandID string) ([]engagement.FollowerSample, error) {
	query := `
		SELECT brand_id, date, followers
		FROM instagram_followers
		WHERE brand_id = $1
		ORDER BY date ASC
	`

	rows, err := s.db.Query(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("error querying follower samples: %w", err)
	}
	defer rows.Close()

	var samples []engagement.FollowerSample
	for rows.Next() {
		var sample engagement.FollowerSample
		if err := rows.Scan(&sample.BrandID, &sample.Date, &sample.Count); err != nil {
			return nil, fmt.Errorf("error scanning follower sample: %w", err)
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follower samples: %w", err)
	}

	return samples, nil
}

// ListAllSamples returns every stored sample ordered by brand and date,
// used to hydrate the session engagement store at startup
func (s *FollowerStore) ListAllSamples(ctx context.Context) ([]engagement.FollowerSample, error) {
	query := `
		SELECT brand_id, date, followers
		FROM instagram_followers
		ORDER BY brand_id ASC, date ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying follower samples: %w", err)
	}
	defer rows.Close()

	var samples []engagement.FollowerSample
	for rows.Next() {
		var sample engagement.FollowerSample
		if err := rows.Scan(&sample.BrandID, &sample.Date, &sample.Count); err != nil {
			return nil, fmt.Errorf("error scanning follower sample: %w", err)
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follower samples: %w", err)
	}

	return samples, nil
}
