package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"gorm.io/gorm"
)

// maxFetchLimit bounds any single read so a missing or hostile limit can
// never pull the whole table.
const maxFetchLimit = 100

// GormOfferRepository implements offers.Repository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

var _ offers.Repository = (*GormOfferRepository)(nil)

// Search finds offers matching every non-empty field of the query. The Text
// field is OR-matched against offer text, store name and category; city is a
// case-insensitive partial match; category is a case-insensitive exact match.
func (r *GormOfferRepository) Search(ctx context.Context, q offers.Query) ([]offers.Offer, error) {
	tx := r.db.WithContext(ctx).Model(&offers.Offer{})

	if city := strings.TrimSpace(q.City); city != "" {
		tx = tx.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		tx = tx.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		tx = tx.Where(
			"LOWER(offer_text) LIKE ? OR LOWER(store_name) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var result []offers.Offer
	if err := tx.Order("valid_till ASC").Limit(clampLimit(q.Limit)).Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to search offers: %w", err)
	}
	return result, nil
}

// FindByCity finds offers whose city contains the given value, case-insensitively
func (r *GormOfferRepository) FindByCity(ctx context.Context, city string, limit int) ([]offers.Offer, error) {
	var result []offers.Offer
	if err := r.db.WithContext(ctx).
		Where("LOWER(city) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(city))+"%").
		Order("valid_till ASC").
		Limit(clampLimit(limit)).
		Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to find offers by city: %w", err)
	}
	return result, nil
}

// FindByCategory finds offers in the given category, case-insensitively
func (r *GormOfferRepository) FindByCategory(ctx context.Context, category string, limit int) ([]offers.Offer, error) {
	var result []offers.Offer
	if err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("valid_till ASC").
		Limit(clampLimit(limit)).
		Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to find offers by category: %w", err)
	}
	return result, nil
}

// FindTrending finds the offers expiring soonest, regardless of city or category
func (r *GormOfferRepository) FindTrending(ctx context.Context, limit int) ([]offers.Offer, error) {
	var result []offers.Offer
	if err := r.db.WithContext(ctx).
		Order("valid_till ASC").
		Limit(clampLimit(limit)).
		Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to find trending offers: %w", err)
	}
	return result, nil
}

// FindWithPriceRange finds offers that carry a non-empty price range text.
// Numeric filtering happens in the application layer because the stored
// price ranges are free text.
func (r *GormOfferRepository) FindWithPriceRange(ctx context.Context, limit int) ([]offers.Offer, error) {
	var result []offers.Offer
	if err := r.db.WithContext(ctx).
		Where("price_range IS NOT NULL AND price_range <> ''").
		Order("valid_till ASC").
		Limit(clampLimit(limit)).
		Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to find offers with price range: %w", err)
	}
	return result, nil
}

// Save persists a new offer
func (r *GormOfferRepository) Save(ctx context.Context, offer *offers.Offer) error {
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	return nil
}

// ListCities returns the distinct non-empty cities present in the offer table
func (r *GormOfferRepository) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := r.db.WithContext(ctx).
		Model(&offers.Offer{}).
		Distinct("city").
		Where("city <> ''").
		Order("city ASC").
		Pluck("city", &cities).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// ListCategories returns the distinct non-empty categories present in the offer table
func (r *GormOfferRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&offers.Offer{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return maxFetchLimit
	}
	if limit > maxFetchLimit {
		return maxFetchLimit
	}
	return limit
}
