package service

import (
	"context"
	"math"

	"marketplace/internal/domain"
)

const earthRadiusKm = 6371.0

// PricingService computes fare quotes from the service catalog.
type PricingService struct {
	catalog *CatalogService
}

// NewPricingService creates a new PricingService.
func NewPricingService(catalog *CatalogService) *PricingService {
	return &PricingService{catalog: catalog}
}

// QuoteRequest contains the parameters for pricing a trip.
type QuoteRequest struct {
	ServiceCategoryID string
	VehicleTypeID     string
	PickupLat         float64
	PickupLng         float64
	DestinationLat    float64
	DestinationLng    float64
}

// QuoteFare prices a trip. Identical inputs always yield an identical
// breakdown; nothing is persisted.
func (s *PricingService) QuoteFare(ctx context.Context, req QuoteRequest) (*domain.FareBreakdown, error) {
	if err := validateCoordinates(req); err != nil {
		return nil, err
	}

	category, err := s.catalog.GetCategory(ctx, req.ServiceCategoryID)
	if err != nil {
		return nil, err
	}

	vehicleType, err := s.catalog.GetVehicleType(ctx, req.VehicleTypeID)
	if err != nil {
		return nil, err
	}

	return ComputeFare(category, vehicleType,
		req.PickupLat, req.PickupLng, req.DestinationLat, req.DestinationLng)
}

// ComputeFare is the pure fare calculation:
//
//	distance_fare = distance_km × price_per_km × vehicle multiplier
//	subtotal      = base_fare + distance_fare
//	total         = max(subtotal, minimum_fare)
//	commission    = total × commission_rate / 100
//
// A distance of zero still pays the base fare clamped to the minimum.
func ComputeFare(category *domain.ServiceCategory, vehicleType *domain.VehicleType,
	pickupLat, pickupLng, destLat, destLng float64) (*domain.FareBreakdown, error) {

	if category.BaseFare < 0 || category.PricePerKm < 0 || category.MinimumFare < 0 {
		return nil, ErrInvalidFareConfig
	}

	distanceKm := HaversineKm(pickupLat, pickupLng, destLat, destLng)

	distanceFare := category.PricePerKm.MulFloat(distanceKm * vehicleType.PriceMultiplier)
	subtotal := category.BaseFare + distanceFare
	total := domain.MaxMoney(subtotal, category.MinimumFare)
	commission := total.Percent(category.CommissionRate)

	return &domain.FareBreakdown{
		DistanceKm:       distanceKm,
		BaseFare:         category.BaseFare,
		DistanceFare:     distanceFare,
		Subtotal:         subtotal,
		TotalAmount:      total,
		CommissionAmount: commission,
	}, nil
}

// HaversineKm returns the great-circle distance between two points in
// decimal degrees, rounded to two decimal places.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func validateCoordinates(req QuoteRequest) error {
	if !isValidLatitude(req.PickupLat) || !isValidLongitude(req.PickupLng) {
		return ErrInvalidPickupLocation
	}
	if !isValidLatitude(req.DestinationLat) || !isValidLongitude(req.DestinationLng) {
		return ErrInvalidDestinationLocation
	}
	return nil
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
