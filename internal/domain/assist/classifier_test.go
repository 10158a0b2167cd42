package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOffersQuery(t *testing.T) {
	t.Run("matches shopping keywords", func(t *testing.T) {
		for _, text := range []string{
			"gold offers please",
			"any DISCOUNTS today",
			"I want to buy bangles",
			"cheap jewellery nearby",
			"latest sale",
		} {
			assert.True(t, IsOffersQuery(text, "en"), text)
		}
	})

	t.Run("matches bare city mentions", func(t *testing.T) {
		for _, text := range []string{"Kolhapur", "something in sangli", "PUNE", "mumbai today"} {
			assert.True(t, IsOffersQuery(text, "en"), text)
		}
	})

	t.Run("matches generic question words", func(t *testing.T) {
		for _, text := range []string{"what is going on", "where to go", "show me options"} {
			assert.True(t, IsOffersQuery(text, "en"), text)
		}
	})

	t.Run("rejects text with no vocabulary hit", func(t *testing.T) {
		for _, text := range []string{"tell me a joke", "", "tune a guitar"} {
			assert.False(t, IsOffersQuery(text, "en"), text)
		}
	})

	t.Run("matches keywords embedded in larger words", func(t *testing.T) {
		// Substring matching is deliberate: "golden" hits "gold".
		assert.True(t, IsOffersQuery("the golden era", "en"))
	})
}
