package offers

import (
	"testing"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("builds an offer from a complete draft", func(t *testing.T) {
		offer, err := New(Draft{
			StoreName:  "  Ratan Jewellers  ",
			City:       "Kolhapur",
			Category:   "jewellery",
			OfferText:  "20% off gold making charges",
			PriceRange: "₹10,000–₹50,000",
			ValidTill:  "2026-09-15",
			Source:     "scraper",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ratan Jewellers", offer.StoreName)
		assert.Equal(t, "scraper", offer.Source)
		require.NotNil(t, offer.ValidTill)
		assert.Equal(t, "2026-09-15", offer.ValidTill.Format(DateLayout))
		assert.NotEqual(t, offer.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("defaults the source", func(t *testing.T) {
		offer, err := New(Draft{
			StoreName: "Ratan Jewellers",
			City:      "Kolhapur",
			Category:  "jewellery",
			OfferText: "20% off",
		})

		require.NoError(t, err)
		assert.Equal(t, DefaultSource, offer.Source)
		assert.Nil(t, offer.ValidTill)
	})

	t.Run("rejects drafts missing required fields", func(t *testing.T) {
		drafts := []Draft{
			{City: "Kolhapur", Category: "jewellery", OfferText: "x"},
			{StoreName: "A", Category: "jewellery", OfferText: "x"},
			{StoreName: "A", City: "Kolhapur", OfferText: "x"},
			{StoreName: "A", City: "Kolhapur", Category: "jewellery"},
			{StoreName: "   ", City: "Kolhapur", Category: "jewellery", OfferText: "x"},
		}
		for _, draft := range drafts {
			_, err := New(draft)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		}
	})

	t.Run("rejects a malformed validity date", func(t *testing.T) {
		_, err := New(Draft{
			StoreName: "A",
			City:      "Kolhapur",
			Category:  "jewellery",
			OfferText: "x",
			ValidTill: "15/09/2026",
		})

		assert.Error(t, err)
	})
}

func TestOffer_PriceBounds(t *testing.T) {
	bounds := func(priceRange string) (min, max *decimal.Decimal, ok bool) {
		offer := Offer{PriceRange: priceRange}
		return offer.PriceBounds()
	}

	t.Run("parses a dash range with Indian grouping", func(t *testing.T) {
		min, max, ok := bounds("₹10,000–₹50,000")
		require.True(t, ok)
		assert.True(t, min.Equal(decimal.NewFromInt(10000)))
		assert.True(t, max.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("parses a spaced hyphen range", func(t *testing.T) {
		min, max, ok := bounds("₹1000 - ₹10000")
		require.True(t, ok)
		assert.True(t, min.Equal(decimal.NewFromInt(1000)))
		assert.True(t, max.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("open-ended range has no upper bound", func(t *testing.T) {
		min, max, ok := bounds("₹75,000+")
		require.True(t, ok)
		assert.True(t, min.Equal(decimal.NewFromInt(75000)))
		assert.Nil(t, max)
	})

	t.Run("a single bare number is an exact price", func(t *testing.T) {
		min, max, ok := bounds("₹5,000")
		require.True(t, ok)
		assert.True(t, min.Equal(decimal.NewFromInt(5000)))
		require.NotNil(t, max)
		assert.True(t, max.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("text with no number has no bounds", func(t *testing.T) {
		_, _, ok := bounds("call for price")
		assert.False(t, ok)
		_, _, ok = bounds("")
		assert.False(t, ok)
	})
}

func TestOffer_InPriceRange(t *testing.T) {
	d := func(v int64) *decimal.Decimal {
		dec := decimal.NewFromInt(v)
		return &dec
	}
	offer := Offer{PriceRange: "₹10,000–₹50,000"}

	t.Run("overlapping windows match", func(t *testing.T) {
		assert.True(t, offer.InPriceRange(d(20000), d(60000)))
		assert.True(t, offer.InPriceRange(d(50000), nil))
		assert.True(t, offer.InPriceRange(nil, d(10000)))
		assert.True(t, offer.InPriceRange(nil, nil))
	})

	t.Run("disjoint windows do not match", func(t *testing.T) {
		assert.False(t, offer.InPriceRange(d(60000), nil))
		assert.False(t, offer.InPriceRange(nil, d(9999)))
	})

	t.Run("unpriced offers never match an explicit filter", func(t *testing.T) {
		unpriced := Offer{}
		assert.False(t, unpriced.InPriceRange(nil, nil))
	})
}
