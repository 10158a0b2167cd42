package offers

import (
	"regexp"
	"strings"
	"time"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for offer validity dates.
const DateLayout = "2006-01-02"

// DefaultSource is the tag applied to offers created without an explicit source.
const DefaultSource = "api"

// Offer represents a retailer's promotional deal.
// Offers are append-only: they are created once and never updated or deleted,
// and a past valid_till date does not remove them from query results.
type Offer struct {
	shared.BaseEntity
	StoreName  string     `gorm:"type:varchar(200);not null" json:"store_name"`
	City       string     `gorm:"type:varchar(100);not null;index" json:"city"`
	Category   string     `gorm:"type:varchar(100);not null;index" json:"category"`
	OfferText  string     `gorm:"type:text;not null" json:"offer_text"`
	PriceRange string     `gorm:"type:varchar(100)" json:"price_range,omitempty"`
	ValidTill  *time.Time `gorm:"type:date;index" json:"valid_till,omitempty"`
	Source     string     `gorm:"type:varchar(100);not null;default:'api'" json:"source"`
}

// TableName returns the table name for GORM
func (Offer) TableName() string {
	return "offers"
}

// Draft holds the caller-supplied fields for a new offer.
type Draft struct {
	StoreName  string
	City       string
	Category   string
	OfferText  string
	PriceRange string
	ValidTill  string
	Source     string
}

// New validates a draft and builds an Offer from it. Store name, city,
// category and offer text are required; everything else is optional.
// Duplicate offers are allowed, the store enforces no uniqueness.
func New(draft Draft) (*Offer, error) {
	if strings.TrimSpace(draft.StoreName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store name is required")
	}
	if strings.TrimSpace(draft.City) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "City is required")
	}
	if strings.TrimSpace(draft.Category) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is required")
	}
	if strings.TrimSpace(draft.OfferText) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Offer text is required")
	}

	offer := &Offer{
		BaseEntity: shared.NewBaseEntity(),
		StoreName:  strings.TrimSpace(draft.StoreName),
		City:       strings.TrimSpace(draft.City),
		Category:   strings.TrimSpace(draft.Category),
		OfferText:  strings.TrimSpace(draft.OfferText),
		PriceRange: strings.TrimSpace(draft.PriceRange),
		Source:     strings.TrimSpace(draft.Source),
	}
	if offer.Source == "" {
		offer.Source = DefaultSource
	}

	if v := strings.TrimSpace(draft.ValidTill); v != "" {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "valid_till must be a date in YYYY-MM-DD format")
		}
		offer.ValidTill = &t
	}

	return offer, nil
}

// priceToken matches a number with optional thousands separators in the
// Indian grouping style used by the source data ("₹1,00,000").
var priceToken = regexp.MustCompile(`[0-9][0-9,]*`)

// PriceBounds parses the free-text price range into numeric bounds.
// Recognized shapes: "₹10,000–₹50,000", "₹1000 - ₹10000", "₹75,000+".
// Returns ok=false when the text carries no parseable number. An open
// upper bound ("+") yields a nil max.
func (o *Offer) PriceBounds() (min, max *decimal.Decimal, ok bool) {
	tokens := priceToken.FindAllString(o.PriceRange, 2)
	if len(tokens) == 0 {
		return nil, nil, false
	}

	lo, err := decimal.NewFromString(strings.ReplaceAll(tokens[0], ",", ""))
	if err != nil {
		return nil, nil, false
	}
	min = &lo

	if len(tokens) == 2 {
		hi, err := decimal.NewFromString(strings.ReplaceAll(tokens[1], ",", ""))
		if err != nil {
			return min, nil, true
		}
		return min, &hi, true
	}

	// Single number: "₹50,000+" is open-ended, a bare "₹5,000" is exact.
	if strings.Contains(o.PriceRange, "+") {
		return min, nil, true
	}
	return min, min, true
}

// InPriceRange reports whether the offer's parsed price bounds overlap the
// given bounds. Nil caller bounds are unbounded on that side. Offers with no
// parseable price never match an explicit price filter.
func (o *Offer) InPriceRange(min, max *decimal.Decimal) bool {
	lo, hi, ok := o.PriceBounds()
	if !ok {
		return false
	}
	if max != nil && lo != nil && lo.GreaterThan(*max) {
		return false
	}
	if min != nil && hi != nil && hi.LessThan(*min) {
		return false
	}
	return true
}
