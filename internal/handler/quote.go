package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// QuoteHandler handles HTTP requests for fare quotes.
type QuoteHandler struct {
	pricingService *service.PricingService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(pricingService *service.PricingService) *QuoteHandler {
	return &QuoteHandler{pricingService: pricingService}
}

// QuoteFareRequest is the HTTP request body for pricing a trip.
type QuoteFareRequest struct {
	ServiceCategoryID string  `json:"service_category_id"`
	VehicleTypeID     string  `json:"vehicle_type_id"`
	PickupLat         float64 `json:"pickup_lat"`
	PickupLng         float64 `json:"pickup_lng"`
	DestinationLat    float64 `json:"destination_lat"`
	DestinationLng    float64 `json:"destination_lng"`
}

// FareBreakdownResponse is the itemized quote returned to the caller.
type FareBreakdownResponse struct {
	DistanceKm       float64 `json:"distance_km"`
	BaseFare         int64   `json:"base_fare"`
	DistanceFare     int64   `json:"distance_fare"`
	TimeFare         int64   `json:"time_fare"`
	Subtotal         int64   `json:"subtotal"`
	TotalAmount      int64   `json:"total_amount"`
	CommissionAmount int64   `json:"commission_amount"`
}

func toFareBreakdownResponse(fb *domain.FareBreakdown) FareBreakdownResponse {
	return FareBreakdownResponse{
		DistanceKm:       fb.DistanceKm,
		BaseFare:         int64(fb.BaseFare),
		DistanceFare:     int64(fb.DistanceFare),
		TimeFare:         int64(fb.TimeFare),
		Subtotal:         int64(fb.Subtotal),
		TotalAmount:      int64(fb.TotalAmount),
		CommissionAmount: int64(fb.CommissionAmount),
	}
}

// QuoteFare handles POST /v1/quotes
func (h *QuoteHandler) QuoteFare(c *gin.Context) {
	var req QuoteFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	breakdown, err := h.pricingService.QuoteFare(c.Request.Context(), service.QuoteRequest{
		ServiceCategoryID: req.ServiceCategoryID,
		VehicleTypeID:     req.VehicleTypeID,
		PickupLat:         req.PickupLat,
		PickupLng:         req.PickupLng,
		DestinationLat:    req.DestinationLat,
		DestinationLng:    req.DestinationLng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFareBreakdownResponse(breakdown))
}
