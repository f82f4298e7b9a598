// internal/adapter/storage/brand_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"bitescout/internal/domain/brand"
)

// ErrNotFound marks a lookup for a row that does not exist
var ErrNotFound = errors.New("not found")

// BrandStore implements durable storage for brands
type BrandStore struct {
	db *pgxpool.Pool
}

// NewBrandStore creates a new brand store
func NewBrandStore(db *pgxpool.Pool) *BrandStore {
	return &BrandStore{
		db: db,
	}
}

// CreateBrand inserts a new brand record
func (s *BrandStore) CreateBrand(ctx context.Context, b brand.Brand) error {
	query := `
		INSERT INTO brands (
			id, name, description, category, price_point, launch_year,
			website, logo_url, rating, instagram_handle, instagram_followers,
			ingredients, influencers, retail_stores, target_audience, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16
		)
	`

	audienceJSON, err := json.Marshal(b.TargetAudience)
	if err != nil {
		return fmt.Errorf("error marshaling target audience: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		b.ID,
		b.Name,
		b.Description,
		string(b.Category),
		string(b.PricePoint),
		b.LaunchYear,
		b.Website,
		b.LogoURL,
		b.Rating,
		b.InstagramHandle,
		b.InstagramFollowers,
		b.Ingredients,
		b.Influencers,
		b.RetailStores,
		audienceJSON,
		b.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error inserting brand: %w", err)
	}

	return nil
}

// GetBrand retrieves a brand by id
func (s *BrandStore) GetBrand(ctx context.Context, id string) (*brand.Brand, error) {
	query := `
		SELECT
			id, name, description, category, price_point, launch_year,
			website, logo_url, rating, instagram_handle, instagram_followers,
			ingredients, influencers, retail_stores, target_audience, created_at
		FROM brands
		WHERE id = $1
	`

	b, err := scanBrand(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("brand %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying brand: %w", err)
	}

	return b, nil
}

// ListBrands returns the full brand collection ordered by creation time
func (s *BrandStore) ListBrands(ctx context.Context) ([]brand.Brand, error) {
	query := `
		SELECT
			id, name, description, category, price_point, launch_year,
			website, logo_url, rating, instagram_handle, instagram_followers,
			ingredients, influencers, retail_stores, target_audience, created_at
		FROM brands
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying brands: %w", err)
	}
	defer rows.Close()

	var brands []brand.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning brand: %w", err)
		}
		brands = append(brands, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

// UpdateFollowerCount refreshes a brand's denormalized follower count
func (s *BrandStore) UpdateFollowerCount(ctx context.Context, id string, count int) error {
	query := `UPDATE brands SET instagram_followers = $2 WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id, count)
	if err != nil {
		return fmt.Errorf("error updating follower count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brand %s: %w", id, ErrNotFound)
	}

	return nil
}

// scanBrand reads one brand row
func scanBrand(row pgx.Row) (*brand.Brand, error) {
	var b brand.Brand
	var category, pricePoint string
	var audienceJSON []byte

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Description,
		&category,
		&pricePoint,
		&b.LaunchYear,
		&b.Website,
		&b.LogoURL,
		&b.Rating,
		&b.InstagramHandle,
		&b.InstagramFollowers,
		&b.Ingredients,
		&b.Influencers,
		&b.RetailStores,
		&audienceJSON,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Category = brand.Category(category)
	b.PricePoint = brand.PricePoint(pricePoint)

	if len(audienceJSON) > 0 {
		if err := json.Unmarshal(audienceJSON, &b.TargetAudience); err != nil {
			return nil, fmt.Errorf("error unmarshaling target audience: %w", err)
		}
	}

	return &b, nil
}
