package offers

import (
	"context"

	"go.uber.org/zap"
)

// SearchStrategy is one step of the fallback cascade: a pure function of the
// query returning a (possibly empty) result list. Strategies that do not
// apply to the query report that via Applies and are skipped.
type SearchStrategy interface {
	Name() string
	Applies(q Query) bool
	Search(ctx context.Context, q Query) ([]Offer, error)
}

// Cascade runs an ordered list of search strategies until one returns a
// non-empty result. A strategy error counts as an empty result for that
// step: the cascade degrades to later strategies instead of failing the
// request.
type Cascade struct {
	strategies []SearchStrategy
	logger     *zap.Logger
}

// NewCascade creates a cascade over the given strategies, tried in order.
func NewCascade(logger *zap.Logger, strategies ...SearchStrategy) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cascade{strategies: strategies, logger: logger}
}

// Run executes the cascade and returns the first non-empty result, or an
// empty slice when every strategy comes up empty.
func (c *Cascade) Run(ctx context.Context, q Query) []Offer {
	for _, s := range c.strategies {
		if !s.Applies(q) {
			continue
		}
		result, err := s.Search(ctx, q)
		if err != nil {
			c.logger.Warn("search strategy failed, falling through",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}
		if len(result) > 0 {
			return result
		}
	}
	return []Offer{}
}

// combinedSearch filters by city, category and free text together. The free
// text is suppressed when the input contains any non-ASCII character so that
// non-English text is never passed into the store's text search.
type combinedSearch struct {
	repo  Repository
	limit int
}

// NewCombinedSearch creates the first cascade step.
func NewCombinedSearch(repo Repository, limit int) SearchStrategy {
	return &combinedSearch{repo: repo, limit: limit}
}

func (s *combinedSearch) Name() string { return "combined" }

func (s *combinedSearch) Applies(Query) bool { return true }

func (s *combinedSearch) Search(ctx context.Context, q Query) ([]Offer, error) {
	text := q.Text
	if !isASCII(text) {
		text = ""
	}
	return s.repo.Search(ctx, Query{
		Text:     text,
		City:     q.City,
		Category: q.Category,
		Limit:    s.limit,
	})
}

// citySearch re-queries on the extracted city alone.
type citySearch struct {
	repo  Repository
	limit int
}

// NewCitySearch creates the city-only cascade step.
func NewCitySearch(repo Repository, limit int) SearchStrategy {
	return &citySearch{repo: repo, limit: limit}
}

func (s *citySearch) Name() string { return "city" }

func (s *citySearch) Applies(q Query) bool { return q.City != "" }

func (s *citySearch) Search(ctx context.Context, q Query) ([]Offer, error) {
	return s.repo.FindByCity(ctx, q.City, s.limit)
}

// categorySearch re-queries on the extracted category alone.
type categorySearch struct {
	repo  Repository
	limit int
}

// NewCategorySearch creates the category-only cascade step.
func NewCategorySearch(repo Repository, limit int) SearchStrategy {
	return &categorySearch{repo: repo, limit: limit}
}

func (s *categorySearch) Name() string { return "category" }

func (s *categorySearch) Applies(q Query) bool { return q.Category != "" }

func (s *categorySearch) Search(ctx context.Context, q Query) ([]Offer, error) {
	return s.repo.FindByCategory(ctx, q.Category, s.limit)
}

// trendingSearch is the terminal fallback. "Trending" carries no popularity
// signal: it is simply the soonest-expiring offers.
type trendingSearch struct {
	repo  Repository
	limit int
}

// NewTrendingSearch creates the terminal cascade step.
func NewTrendingSearch(repo Repository, limit int) SearchStrategy {
	return &trendingSearch{repo: repo, limit: limit}
}

func (s *trendingSearch) Name() string { return "trending" }

func (s *trendingSearch) Applies(Query) bool { return true }

func (s *trendingSearch) Search(ctx context.Context, q Query) ([]Offer, error) {
	return s.repo.FindTrending(ctx, s.limit)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
