// internal/domain/brand/model.go

package brand

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies a brand's product line
type Category string

const (
	CategoryFood        Category = "Food"
	CategoryBeverages   Category = "Beverages"
	CategorySnacks      Category = "Snacks"
	CategorySupplements Category = "Supplements"
	CategoryCondiments  Category = "Condiments"
	CategoryDesserts    Category = "Desserts"
)

// Categories lists every valid category
var Categories = []Category{
	CategoryFood,
	CategoryBeverages,
	CategorySnacks,
	CategorySupplements,
	CategoryCondiments,
	CategoryDesserts,
}

// PricePoint represents a brand's price tier
type PricePoint string

const (
	PriceLow     PricePoint = "Low"
	PriceMid     PricePoint = "Mid"
	PricePremium PricePoint = "Premium"
)

// PricePoints lists every valid price tier
var PricePoints = []PricePoint{PriceLow, PriceMid, PricePremium}

// TargetAudience describes who a brand is built for
type TargetAudience struct {
	Demographics string   `json:"demographics"`
	Lifestyle    string   `json:"lifestyle"`
	Values       string   `json:"values"`
	PainPoints   []string `json:"painPoints"`
}

// Brand represents an indie food or beverage brand in the directory
type Brand struct {
	ID                 string
	Name               string
	Description        string
	Category           Category
	PricePoint         PricePoint
	LaunchYear         int
	Website            string
	LogoURL            string
	Rating             float64
	InstagramHandle    string
	InstagramFollowers int
	Ingredients        []string
	Influencers        []string
	RetailStores       []string
	TargetAudience     TargetAudience
	CreatedAt          time.Time
}

// MinLaunchYear bounds how far back a launch year may reach
const MinLaunchYear = 1900

// New creates a brand from a submission, assigning an id and creation
// timestamp and normalizing the free-text lists
func New(b Brand) (Brand, error) {
	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	b.InstagramHandle = strings.TrimPrefix(strings.TrimSpace(b.InstagramHandle), "@")
	b.Ingredients = cleanList(b.Ingredients)
	b.Influencers = cleanList(b.Influencers)
	b.RetailStores = cleanList(b.RetailStores)
	b.TargetAudience.PainPoints = cleanList(b.TargetAudience.PainPoints)

	if err := b.Validate(); err != nil {
		return Brand{}, err
	}
	return b, nil
}

// Validate checks the brand invariants
func (b Brand) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("brand name is required")
	}
	if !validCategory(b.Category) {
		return fmt.Errorf("invalid category %q", b.Category)
	}
	if !validPricePoint(b.PricePoint) {
		return fmt.Errorf("invalid price point %q", b.PricePoint)
	}
	if b.Rating < 0 || b.Rating > 5 {
		return fmt.Errorf("rating %.1f out of range [0,5]", b.Rating)
	}
	maxYear := time.Now().Year() + 5
	if b.LaunchYear < MinLaunchYear || b.LaunchYear > maxYear {
		return fmt.Errorf("launch year %d out of range [%d,%d]", b.LaunchYear, MinLaunchYear, maxYear)
	}
	if b.InstagramFollowers < 0 {
		return fmt.Errorf("follower count cannot be negative")
	}
	for _, list := range [][]string{b.Ingredients, b.Influencers, b.RetailStores, b.TargetAudience.PainPoints} {
		for _, item := range list {
			if strings.TrimSpace(item) == "" || item != strings.TrimSpace(item) {
				return fmt.Errorf("list entries must be non-empty trimmed strings")
			}
		}
	}
	return nil
}

// IsNew reports whether the brand was created within the past 30 days
func (b Brand) IsNew(now time.Time) bool {
	return b.CreatedAt.After(now.AddDate(0, 0, -30))
}

func validCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func validPricePoint(p PricePoint) bool {
	for _, known := range PricePoints {
		if p == known {
			return true
		}
	}
	return false
}

// cleanList trims entries and drops the empty ones
func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
