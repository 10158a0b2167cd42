package assist

import "strings"

// offerKeywords are the shopping and deal related words that mark a message
// as an offers query on their own.
var offerKeywords = []string{
	"offer", "offers", "deal", "deals", "discount", "discounts", "sale", "sales",
	"price", "prices", "cheap", "store", "stores", "shop", "shops",
	"jewellery", "jewelry", "gold", "diamond", "bangles", "rings", "buy",
	"purchase", "shopping", "mall", "market", "latest", "best", "available",
	"near", "local", "area", "city",
}

// cityNames is the fixed set of cities the assistant knows about.
var cityNames = []string{"kolhapur", "sangli", "pune", "mumbai"}

// intentWords are generic interrogative and shopping-intent words. This list
// is deliberately broad and classifies almost any question as an offers
// query; known product behavior, do not narrow without sign-off.
var intentWords = []string{"what", "where", "show", "find", "get", "any", "available"}

// IsOffersQuery reports whether the message is asking about offers or deals.
// Matching is a case-insensitive substring check against the keyword, city
// and intent vocabularies in that order, short-circuiting on the first hit.
// The language tag is accepted for interface symmetry with the reply
// pipeline; classification is English-only today.
func IsOffersQuery(text, language string) bool {
	lower := strings.ToLower(text)

	if containsAny(lower, offerKeywords) {
		return true
	}
	if containsAny(lower, cityNames) {
		return true
	}
	return containsAny(lower, intentWords)
}

func containsAny(lower string, vocabulary []string) bool {
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
