package assist

import "strings"

// cityEntry pairs the lowercase lookup key with the canonical city name.
type cityEntry struct {
	key  string
	name string
}

// cityTable maps city mentions to canonical names. Order matters: the first
// table entry found in the text wins, not the mention occurring earliest.
var cityTable = []cityEntry{
	{"kolhapur", "Kolhapur"},
	{"sangli", "Sangli"},
	{"pune", "Pune"},
	{"mumbai", "Mumbai"},
}

// categoryEntry pairs a canonical category with its synonym list.
type categoryEntry struct {
	category string
	synonyms []string
}

// categoryTable holds the known categories. Jewellery is the only one today.
var categoryTable = []categoryEntry{
	{
		category: "jewellery",
		synonyms: []string{"jewellery", "jewelry", "gold", "diamond", "bangles", "rings", "necklace", "silver"},
	},
}

// ExtractCity returns the canonical city mentioned in the text, or "" when
// no known city is found. Matching is case-insensitive substring.
func ExtractCity(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range cityTable {
		if strings.Contains(lower, entry.key) {
			return entry.name
		}
	}
	return ""
}

// ExtractCategory returns the canonical category whose synonym list matches
// the text, or "" when none does.
func ExtractCategory(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range categoryTable {
		if containsAny(lower, entry.synonyms) {
			return entry.category
		}
	}
	return ""
}
