package service

import (
	"testing"

	"marketplace/internal/domain"
)

func testCategory() *domain.ServiceCategory {
	return &domain.ServiceCategory{
		ID:             "cat-taxi",
		Name:           "Taxi",
		Slug:           "taxi",
		BaseFare:       5000,
		PricePerKm:     2500,
		MinimumFare:    10000,
		CommissionRate: 20,
		IsActive:       true,
	}
}

func testVehicleType(multiplier float64) *domain.VehicleType {
	return &domain.VehicleType{
		ID:              "vt-sedan",
		Name:            "Sedan",
		Slug:            "sedan",
		Capacity:        4,
		PriceMultiplier: multiplier,
		IsActive:        true,
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	t.Parallel()

	// One degree of longitude along the equator.
	got := HaversineKm(0, 0, 0, 1)
	if got != 111.19 {
		t.Errorf("HaversineKm(0,0,0,1) = %v, want 111.19", got)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	t.Parallel()

	forward := HaversineKm(-6.2088, 106.8456, -6.1751, 106.8650)
	backward := HaversineKm(-6.1751, 106.8650, -6.2088, 106.8456)
	if forward != backward {
		t.Errorf("distance not symmetric: %v vs %v", forward, backward)
	}
	if forward <= 0 {
		t.Errorf("expected positive distance, got %v", forward)
	}
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	if got := HaversineKm(-6.2088, 106.8456, -6.2088, 106.8456); got != 0 {
		t.Errorf("expected zero distance, got %v", got)
	}
}

func TestComputeFare_Breakdown(t *testing.T) {
	t.Parallel()

	// 0,0 -> 0,1 is 111.19 km.
	fb, err := ComputeFare(testCategory(), testVehicleType(1.0), 0, 0, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fb.DistanceKm != 111.19 {
		t.Errorf("DistanceKm = %v, want 111.19", fb.DistanceKm)
	}
	if fb.BaseFare != 5000 {
		t.Errorf("BaseFare = %v, want 5000", fb.BaseFare)
	}
	if fb.DistanceFare != 277975 {
		t.Errorf("DistanceFare = %v, want 277975", fb.DistanceFare)
	}
	if fb.Subtotal != 282975 {
		t.Errorf("Subtotal = %v, want 282975", fb.Subtotal)
	}
	if fb.TotalAmount != 282975 {
		t.Errorf("TotalAmount = %v, want 282975", fb.TotalAmount)
	}
	if fb.CommissionAmount != 56595 {
		t.Errorf("CommissionAmount = %v, want 56595", fb.CommissionAmount)
	}
}

func TestComputeFare_VehicleMultiplierScalesDistanceFare(t *testing.T) {
	t.Parallel()

	fb, err := ComputeFare(testCategory(), testVehicleType(2.0), 0, 0, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fb.DistanceFare != 555950 {
		t.Errorf("DistanceFare = %v, want 555950", fb.DistanceFare)
	}
	// The multiplier touches only the distance component.
	if fb.BaseFare != 5000 {
		t.Errorf("BaseFare = %v, want 5000", fb.BaseFare)
	}
}

func TestComputeFare_MinimumFareClamp(t *testing.T) {
	t.Parallel()

	// Zero distance still pays base fare, clamped up to the minimum.
	fb, err := ComputeFare(testCategory(), testVehicleType(1.0), -6.2, 106.8, -6.2, 106.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fb.DistanceKm != 0 {
		t.Errorf("DistanceKm = %v, want 0", fb.DistanceKm)
	}
	if fb.Subtotal != 5000 {
		t.Errorf("Subtotal = %v, want 5000", fb.Subtotal)
	}
	if fb.TotalAmount != 10000 {
		t.Errorf("TotalAmount = %v, want minimum fare 10000", fb.TotalAmount)
	}
	// Commission applies to the clamped total.
	if fb.CommissionAmount != 2000 {
		t.Errorf("CommissionAmount = %v, want 2000", fb.CommissionAmount)
	}
}

func TestFareArithmetic_FiveKilometerExample(t *testing.T) {
	t.Parallel()

	// Seed tariff: base 5000, 2500/km, minimum 10000, 1.5x vehicle, 5.00 km.
	distanceFare := domain.Money(2500).MulFloat(5.00 * 1.5)
	if distanceFare != 18750 {
		t.Errorf("distance fare = %v, want 18750", distanceFare)
	}

	subtotal := domain.Money(5000) + distanceFare
	if subtotal != 23750 {
		t.Errorf("subtotal = %v, want 23750", subtotal)
	}

	total := domain.MaxMoney(subtotal, 10000)
	if total != 23750 {
		t.Errorf("total = %v, want 23750", total)
	}
}

func TestComputeFare_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := ComputeFare(testCategory(), testVehicleType(1.5), -6.2088, 106.8456, -6.1751, 106.8650)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeFare(testCategory(), testVehicleType(1.5), -6.2088, 106.8456, -6.1751, 106.8650)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("identical inputs produced different breakdowns: %+v vs %+v", first, second)
	}
}

func TestComputeFare_RejectsNegativeConfig(t *testing.T) {
	t.Parallel()

	cat := testCategory()
	cat.PricePerKm = -1

	if _, err := ComputeFare(cat, testVehicleType(1.0), 0, 0, 0, 1); err != ErrInvalidFareConfig {
		t.Errorf("expected ErrInvalidFareConfig, got %v", err)
	}
}

func TestValidateCoordinates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		req  QuoteRequest
		want error
	}{
		{"valid", QuoteRequest{PickupLat: -6.2, PickupLng: 106.8, DestinationLat: -6.1, DestinationLng: 106.9}, nil},
		{"pickup latitude out of range", QuoteRequest{PickupLat: 91, PickupLng: 0}, ErrInvalidPickupLocation},
		{"pickup longitude out of range", QuoteRequest{PickupLat: 0, PickupLng: -181}, ErrInvalidPickupLocation},
		{"destination latitude out of range", QuoteRequest{DestinationLat: -90.5}, ErrInvalidDestinationLocation},
		{"boundary values accepted", QuoteRequest{PickupLat: 90, PickupLng: -180, DestinationLat: -90, DestinationLng: 180}, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := validateCoordinates(tc.req); got != tc.want {
				t.Errorf("validateCoordinates() = %v, want %v", got, tc.want)
			}
		})
	}
}
