package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCity(t *testing.T) {
	t.Run("returns the canonical city name", func(t *testing.T) {
		assert.Equal(t, "Kolhapur", ExtractCity("gold offers in KOLHAPUR"))
		assert.Equal(t, "Sangli", ExtractCity("deals in sangli please"))
		assert.Equal(t, "Pune", ExtractCity("pune"))
		assert.Equal(t, "Mumbai", ExtractCity("anything in mumbai?"))
	})

	t.Run("table order wins over mention order", func(t *testing.T) {
		// Pune appears first in the text, but Kolhapur comes first in the table.
		assert.Equal(t, "Kolhapur", ExtractCity("pune or kolhapur, whichever"))
	})

	t.Run("returns empty for unknown cities", func(t *testing.T) {
		assert.Empty(t, ExtractCity("offers in delhi"))
		assert.Empty(t, ExtractCity(""))
	})
}

func TestExtractCategory(t *testing.T) {
	t.Run("maps synonyms to the canonical category", func(t *testing.T) {
		for _, text := range []string{
			"gold offers",
			"DIAMOND rings",
			"silver bangles in sangli",
			"jewelry please",
			"necklace deals",
		} {
			assert.Equal(t, "jewellery", ExtractCategory(text), text)
		}
	})

	t.Run("returns empty when no synonym matches", func(t *testing.T) {
		assert.Empty(t, ExtractCategory("electronics offers in pune"))
		assert.Empty(t, ExtractCategory(""))
	})
}
