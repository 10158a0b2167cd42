package assist

import (
	"fmt"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
)

// offersSystemPrompt frames the completion model as a deal recommender.
const offersSystemPrompt = "You are a local offers specialist. Analyze the available offers and recommend the best deals based on value, location, and user needs. Focus only on shopping offers and deals."

// chatRedirectMessage answers non-offers questions on the chat endpoint.
const chatRedirectMessage = "I specialize in local offers and deals only. Please ask me about offers in your city, like 'gold offers in Kolhapur' or 'jewelry discounts in your area'."

// whatsappRedirectMessage answers non-offers questions on the WhatsApp channel.
const whatsappRedirectMessage = "I can only help you find local offers and deals. Please ask me about offers in your city like 'gold offers in Kolhapur' or 'jewelry discounts in Sangli'."

// technicalIssueMessage replaces the reply when the completion call fails.
const technicalIssueMessage = "Sorry, there was a technical issue. Please try again with an offers query."

// welcomeMessage greets new WhatsApp users.
const welcomeMessage = `Hello! Welcome to Local Offers Bot!

I help you find the best local offers and deals in your area:

Examples:
- "gold offers in Kolhapur"
- "jewelry discount in Sangli"
- "latest deals in Pune"
- "shops offering discounts"

Available cities: Kolhapur, Sangli, Pune, Mumbai
Available categories: Jewelry, Gold, Diamond

Ask me about offers in your city!`

// greetings are the words that trigger the welcome message on WhatsApp.
var greetings = []string{"hi", "hello", "hey", "start", "help"}

// IsGreeting reports whether the message contains a greeting word.
func IsGreeting(message string) bool {
	lower := strings.ToLower(message)
	for _, greeting := range greetings {
		if strings.Contains(lower, greeting) {
			return true
		}
	}
	return false
}

// whatsappMaxLength keeps replies well under WhatsApp's 4096 hard limit so
// they stay readable on a phone.
const whatsappMaxLength = 1500

const whatsappTruncationTail = "\n\nAsk for more information if needed!"

// FormatForWhatsApp prepends the offers banner when the reply talks about
// offers and truncates the result so the final payload never exceeds the
// length cap. Banner before truncation, so the cap holds either way.
func FormatForWhatsApp(message string) string {
	if strings.Contains(strings.ToLower(message), "offer") {
		message = "BEST OFFERS:\n\n" + message
	}
	if runes := []rune(message); len(runes) > whatsappMaxLength {
		message = string(runes[:whatsappMaxLength-50]) + whatsappTruncationTail
	}
	return message
}

// formatOffersForPrompt renders offers as the numbered block the completion
// prompt expects, with fixed fallbacks for missing fields.
func formatOffersForPrompt(list []offers.Offer) string {
	if len(list) == 0 {
		return "No offers available."
	}

	blocks := make([]string, 0, len(list))
	for i, offer := range list {
		priceRange := offer.PriceRange
		if priceRange == "" {
			priceRange = "Not specified"
		}
		validTill := "Not specified"
		if offer.ValidTill != nil {
			validTill = offer.ValidTill.Format(offers.DateLayout)
		}
		category := offer.Category
		if category == "" {
			category = "General"
		}
		blocks = append(blocks, fmt.Sprintf(
			"%d. %s - %s\n   Offer: %s\n   Price Range: %s\n   Valid Till: %s\n   Category: %s",
			i+1, offer.StoreName, offer.City, offer.OfferText, priceRange, validTill, category,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// buildOffersUserPrompt pairs the user's question with the retrieved offers.
func buildOffersUserPrompt(query, offersText string) string {
	return fmt.Sprintf(`User Query: %q

Available Offers from Database:
%s

IMPORTANT: Use the exact offers provided above. Analyze and recommend the best deals based on:
- Value for money
- Location convenience
- Offer validity
- Price range suitability

Respond in English with clear recommendations about which offers provide the best value.`, query, offersText)
}

// buildNoOffersMessage suggests live cities and categories when a search
// comes up empty. No completion call is made on this path.
func buildNoOffersMessage(cities, categories []string) string {
	var b strings.Builder
	b.WriteString("Sorry, no offers match your current search criteria.\n\n")
	if len(cities) > 0 {
		b.WriteString("Available cities: " + strings.Join(cities, ", ") + "\n")
	}
	if len(categories) > 0 {
		b.WriteString("Available categories: " + strings.Join(categories, ", ") + "\n")
	}
	b.WriteString("\nPlease try modifying your search criteria.")
	return b.String()
}

// buildDocumentPrompt asks the reply pipeline to explain OCR output.
func buildDocumentPrompt(extracted string) string {
	return fmt.Sprintf("Please analyze this document text and point out any offers, deals or discounts it mentions: %s", extracted)
}

// buildMultimodalPrompt merges the text, speech and document inputs into one
// analysis request.
func buildMultimodalPrompt(combined string) string {
	return fmt.Sprintf(`%s
Please analyze all the provided inputs together and respond with the most relevant local offers and deals.
If there's a document, relate your answer to its content.
If there's speech and text, consider both in your response.`, combined)
}
