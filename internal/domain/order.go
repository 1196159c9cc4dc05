package domain

import "time"

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether status is one of the known statuses.
func ValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPickedUp,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is legal from status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// FareBreakdown is the itemized result of pricing a trip. TimeFare is a
// reserved component: it stays zero unless supplied by the caller.
type FareBreakdown struct {
	DistanceKm       float64
	BaseFare         Money
	DistanceFare     Money
	TimeFare         Money
	Subtotal         Money
	TotalAmount      Money
	CommissionAmount Money
}

// Order is the transactional aggregate of the marketplace. Pricing
// fields are computed once at creation; the persisted total is
// authoritative afterwards (the quote is binding).
type Order struct {
	ID          string
	OrderNumber string

	CustomerID string
	DriverID   string // empty until a driver accepts
	MerchantID string // empty for pure transport orders

	ServiceCategoryID string
	VehicleTypeID     string

	PickupAddress        string
	PickupLatitude       float64
	PickupLongitude      float64
	DestinationAddress   string
	DestinationLatitude  float64
	DestinationLongitude float64

	DistanceKm               float64
	EstimatedDurationMinutes int

	BaseFare         Money
	DistanceFare     Money
	TimeFare         Money
	Subtotal         Money
	DiscountAmount   Money
	TotalAmount      Money
	CommissionAmount Money

	Status OrderStatus
	Notes  string

	AcceptedAt         time.Time
	PickedUpAt         time.Time
	DeliveredAt        time.Time
	CompletedAt        time.Time
	CancelledAt        time.Time
	CancellationReason string

	CreatedAt time.Time
}
