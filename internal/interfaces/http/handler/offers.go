package handler

import (
	"net/http"

	offersapp "github.com/Shriiii01/know-your-local-offers/internal/application/offers"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OfferHandler handles offer search and management endpoints
type OfferHandler struct {
	BaseHandler
	offerService *offersapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *offersapp.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// SearchOffersRequest represents the offer search query parameters
type SearchOffersRequest struct {
	City     string `form:"city"`
	Category string `form:"category"`
	Query    string `form:"query"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

// OfferListResponse represents an offer search result
type OfferListResponse struct {
	Offers []offersapp.OfferResponse `json:"offers"`
	Count  int                       `json:"count"`
	Status string                    `json:"status"`
}

// Search looks up offers with filter priority: price bounds, free-text
// query, city, category, then trending
func (h *OfferHandler) Search(c *gin.Context) {
	var req SearchOffersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	search := offersapp.SearchRequest{
		City:     req.City,
		Category: req.Category,
		Query:    req.Query,
		Limit:    req.Limit,
	}

	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			h.BadRequest(c, "min_price must be a number")
			return
		}
		search.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			h.BadRequest(c, "max_price must be a number")
			return
		}
		search.MaxPrice = &max
	}

	results, err := h.offerService.Find(c.Request.Context(), search)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, OfferListResponse{
		Offers: results,
		Count:  len(results),
		Status: "success",
	})
}

// Add stores a new offer
func (h *OfferHandler) Add(c *gin.Context) {
	var req offersapp.AddOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.offerService.Add(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer added successfully",
		"status":  "success",
	})
}

// Cities lists the distinct cities that currently have offers
func (h *OfferHandler) Cities(c *gin.Context) {
	cities, err := h.offerService.Cities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"cities": cities,
		"count":  len(cities),
	})
}

// Categories lists the distinct offer categories
func (h *OfferHandler) Categories(c *gin.Context) {
	categories, err := h.offerService.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}
