package offers

import "context"

// Query carries the filter set for a combined offer search. Empty fields are
// not applied. City matches are case-insensitive and partial, category
// matches are exact, and Text is OR-matched across offer text, store name
// and category.
type Query struct {
	Text     string
	City     string
	Category string
	Limit    int
}

// Repository is the gateway to the remote offer table. All reads return
// offers ordered by ascending validity date and capped at the caller's
// limit. Reads are best-effort: callers are expected to treat an error as
// an empty result and degrade, never to retry.
type Repository interface {
	Search(ctx context.Context, q Query) ([]Offer, error)
	FindByCity(ctx context.Context, city string, limit int) ([]Offer, error)
	FindByCategory(ctx context.Context, category string, limit int) ([]Offer, error)
	FindTrending(ctx context.Context, limit int) ([]Offer, error)
	FindWithPriceRange(ctx context.Context, limit int) ([]Offer, error)
	Save(ctx context.Context, offer *Offer) error
	ListCities(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
}
