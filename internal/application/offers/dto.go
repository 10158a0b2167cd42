package offers

import (
	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"github.com/google/uuid"
)

// AddOfferRequest is the add-offer input payload
type AddOfferRequest struct {
	StoreName  string `json:"store_name" binding:"required"`
	City       string `json:"city" binding:"required"`
	Category   string `json:"category" binding:"required"`
	OfferText  string `json:"offer_text" binding:"required"`
	PriceRange string `json:"price_range"`
	ValidTill  string `json:"valid_till"`
	Source     string `json:"source"`
}

// OfferResponse is the wire representation of an offer
type OfferResponse struct {
	ID         uuid.UUID `json:"id"`
	StoreName  string    `json:"store_name"`
	City       string    `json:"city"`
	Category   string    `json:"category"`
	OfferText  string    `json:"offer_text"`
	PriceRange string    `json:"price_range,omitempty"`
	ValidTill  string    `json:"valid_till,omitempty"`
	Source     string    `json:"source"`
}

// ToOfferResponse converts a domain offer to its wire representation
func ToOfferResponse(offer *offers.Offer) OfferResponse {
	resp := OfferResponse{
		ID:         offer.ID,
		StoreName:  offer.StoreName,
		City:       offer.City,
		Category:   offer.Category,
		OfferText:  offer.OfferText,
		PriceRange: offer.PriceRange,
		Source:     offer.Source,
	}
	if offer.ValidTill != nil {
		resp.ValidTill = offer.ValidTill.Format(offers.DateLayout)
	}
	return resp
}

// ToOfferResponses converts a slice of domain offers. The result is never
// nil so the JSON field is always an array.
func ToOfferResponses(list []offers.Offer) []OfferResponse {
	responses := make([]OfferResponse, 0, len(list))
	for i := range list {
		responses = append(responses, ToOfferResponse(&list[i]))
	}
	return responses
}
