package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the HTTP request body for creating an order.
type CreateOrderRequest struct {
	CustomerID               string  `json:"customer_id"`
	ServiceCategoryID        string  `json:"service_category_id"`
	VehicleTypeID            string  `json:"vehicle_type_id"`
	PickupAddress            string  `json:"pickup_address"`
	PickupLat                float64 `json:"pickup_lat"`
	PickupLng                float64 `json:"pickup_lng"`
	DestinationAddress       string  `json:"destination_address"`
	DestinationLat           float64 `json:"destination_lat"`
	DestinationLng           float64 `json:"destination_lng"`
	Notes                    string  `json:"notes,omitempty"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes,omitempty"`
}

// CancelOrderRequest is the HTTP request body for cancelling an order.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// AdvanceOrderRequest is the HTTP request body for advancing an order
// one step along its lifecycle.
type AdvanceOrderRequest struct {
	Status   string `json:"status"`
	DriverID string `json:"driver_id,omitempty"`
}

// OrderResponse is the HTTP response for order operations.
type OrderResponse struct {
	ID                       string  `json:"id"`
	OrderNumber              string  `json:"order_number"`
	CustomerID               string  `json:"customer_id"`
	DriverID                 string  `json:"driver_id,omitempty"`
	MerchantID               string  `json:"merchant_id,omitempty"`
	ServiceCategoryID        string  `json:"service_category_id"`
	VehicleTypeID            string  `json:"vehicle_type_id"`
	PickupAddress            string  `json:"pickup_address"`
	PickupLat                float64 `json:"pickup_lat"`
	PickupLng                float64 `json:"pickup_lng"`
	DestinationAddress       string  `json:"destination_address"`
	DestinationLat           float64 `json:"destination_lat"`
	DestinationLng           float64 `json:"destination_lng"`
	DistanceKm               float64 `json:"distance_km"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes,omitempty"`
	BaseFare                 int64   `json:"base_fare"`
	DistanceFare             int64   `json:"distance_fare"`
	TimeFare                 int64   `json:"time_fare"`
	Subtotal                 int64   `json:"subtotal"`
	DiscountAmount           int64   `json:"discount_amount"`
	TotalAmount              int64   `json:"total_amount"`
	CommissionAmount         int64   `json:"commission_amount"`
	Status                   string  `json:"status"`
	Notes                    string  `json:"notes,omitempty"`
	AcceptedAt               string  `json:"accepted_at,omitempty"`
	PickedUpAt               string  `json:"picked_up_at,omitempty"`
	DeliveredAt              string  `json:"delivered_at,omitempty"`
	CompletedAt              string  `json:"completed_at,omitempty"`
	CancelledAt              string  `json:"cancelled_at,omitempty"`
	CancellationReason       string  `json:"cancellation_reason,omitempty"`
	CreatedAt                string  `json:"created_at"`
}

func formatOptionalTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04:05Z07:00")
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                       o.ID,
		OrderNumber:              o.OrderNumber,
		CustomerID:               o.CustomerID,
		DriverID:                 o.DriverID,
		MerchantID:               o.MerchantID,
		ServiceCategoryID:        o.ServiceCategoryID,
		VehicleTypeID:            o.VehicleTypeID,
		PickupAddress:            o.PickupAddress,
		PickupLat:                o.PickupLatitude,
		PickupLng:                o.PickupLongitude,
		DestinationAddress:       o.DestinationAddress,
		DestinationLat:           o.DestinationLatitude,
		DestinationLng:           o.DestinationLongitude,
		DistanceKm:               o.DistanceKm,
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		BaseFare:                 int64(o.BaseFare),
		DistanceFare:             int64(o.DistanceFare),
		TimeFare:                 int64(o.TimeFare),
		Subtotal:                 int64(o.Subtotal),
		DiscountAmount:           int64(o.DiscountAmount),
		TotalAmount:              int64(o.TotalAmount),
		CommissionAmount:         int64(o.CommissionAmount),
		Status:                   string(o.Status),
		Notes:                    o.Notes,
		AcceptedAt:               formatOptionalTime(o.AcceptedAt),
		PickedUpAt:               formatOptionalTime(o.PickedUpAt),
		DeliveredAt:              formatOptionalTime(o.DeliveredAt),
		CompletedAt:              formatOptionalTime(o.CompletedAt),
		CancelledAt:              formatOptionalTime(o.CancelledAt),
		CancellationReason:       o.CancellationReason,
		CreatedAt:                o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		CustomerID:               req.CustomerID,
		ServiceCategoryID:        req.ServiceCategoryID,
		VehicleTypeID:            req.VehicleTypeID,
		PickupAddress:            req.PickupAddress,
		PickupLat:                req.PickupLat,
		PickupLng:                req.PickupLng,
		DestinationAddress:       req.DestinationAddress,
		DestinationLat:           req.DestinationLat,
		DestinationLng:           req.DestinationLng,
		Notes:                    req.Notes,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /v1/orders/:id. The path parameter is either an
// order ID or a TRX order number.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	key := c.Param("id")

	var order *domain.Order
	var err error
	if strings.HasPrefix(key, "TRX-") {
		order, err = h.orderService.GetOrderByNumber(c.Request.Context(), key)
	} else {
		order, err = h.orderService.GetOrder(c.Request.Context(), key)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// ListOrders handles GET /v1/orders?customer_id=...
func (h *OrderHandler) ListOrders(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "customer_id query parameter is required"})
		return
	}

	orders, err := h.orderService.ListOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}

	respondJSON(c, http.StatusOK, gin.H{"orders": responses, "count": len(responses)})
}

// CancelOrder handles POST /v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), service.CancelOrderRequest{
		OrderID: c.Param("id"),
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// AdvanceOrder handles POST /v1/orders/:id/advance
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	var req AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.AdvanceOrder(c.Request.Context(), service.AdvanceOrderRequest{
		OrderID:    c.Param("id"),
		NextStatus: domain.OrderStatus(req.Status),
		DriverID:   req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}
