package domain

import "time"

// ServiceCategory is the fare configuration for one kind of service
// (taxi, send, rent, food, shop). It is platform-wide reference data,
// administrator managed and immutable per quote.
type ServiceCategory struct {
	ID             string
	Name           string
	Slug           string
	Description    string
	BaseFare       Money
	PricePerKm     Money
	PricePerMinute Money
	MinimumFare    Money
	MaximumFare    *Money // nil when the category has no cap
	CommissionRate float64
	IsActive       bool
	CreatedAt      time.Time
}

// VehicleType is the vehicle class a customer can request. Its price
// multiplier scales the distance fare.
type VehicleType struct {
	ID              string
	Name            string
	Slug            string
	Description     string
	Capacity        int
	PriceMultiplier float64
	IsActive        bool
	CreatedAt       time.Time
}
