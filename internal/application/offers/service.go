package offers

import (
	"context"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultSearchLimit applies when the caller does not pass a limit.
const defaultSearchLimit = 10

// priceScanLimit is how many priced offers the price filter scans. Price
// ranges are free text, so the numeric filter runs in memory over this window.
const priceScanLimit = 50

// SearchRequest carries the direct search filters. Price bounds take
// priority, then free-text query, city, category; with no filters the
// soonest-expiring offers come back.
type SearchRequest struct {
	City     string
	Category string
	Query    string
	Limit    int
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// OfferService handles the direct offer operations behind the REST surface
type OfferService struct {
	repo   offers.Repository
	logger *zap.Logger
}

// NewOfferService creates a new OfferService
func NewOfferService(repo offers.Repository, logger *zap.Logger) *OfferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferService{repo: repo, logger: logger}
}

// Find runs the direct search with the documented filter priority
func (s *OfferService) Find(ctx context.Context, req SearchRequest) ([]OfferResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var (
		result []offers.Offer
		err    error
	)
	switch {
	case req.MinPrice != nil || req.MaxPrice != nil:
		result, err = s.findByPrice(ctx, req, limit)
	case req.Query != "":
		result, err = s.repo.Search(ctx, offers.Query{
			Text:     req.Query,
			City:     req.City,
			Category: req.Category,
			Limit:    limit,
		})
	case req.City != "":
		result, err = s.repo.FindByCity(ctx, req.City, limit)
	case req.Category != "":
		result, err = s.repo.FindByCategory(ctx, req.Category, limit)
	default:
		result, err = s.repo.FindTrending(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	return ToOfferResponses(result), nil
}

// findByPrice scans priced offers and keeps those whose parsed bounds
// overlap the requested range, preserving the expiry ordering.
func (s *OfferService) findByPrice(ctx context.Context, req SearchRequest, limit int) ([]offers.Offer, error) {
	priced, err := s.repo.FindWithPriceRange(ctx, priceScanLimit)
	if err != nil {
		return nil, err
	}

	matched := make([]offers.Offer, 0, limit)
	for _, offer := range priced {
		if !offer.InPriceRange(req.MinPrice, req.MaxPrice) {
			continue
		}
		matched = append(matched, offer)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

// Add validates and stores a new offer
func (s *OfferService) Add(ctx context.Context, req AddOfferRequest) error {
	offer, err := offers.New(offers.Draft{
		StoreName:  req.StoreName,
		City:       req.City,
		Category:   req.Category,
		OfferText:  req.OfferText,
		PriceRange: req.PriceRange,
		ValidTill:  req.ValidTill,
		Source:     req.Source,
	})
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, offer)
}

// Cities lists the cities that currently have offers
func (s *OfferService) Cities(ctx context.Context) ([]string, error) {
	return s.repo.ListCities(ctx)
}

// Categories lists the categories that currently have offers
func (s *OfferService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
