package repository

import (
	"context"

	"marketplace/internal/domain"
)

// CatalogRepository defines read access to the platform-wide service
// category and vehicle type reference data.
type CatalogRepository interface {
	// GetCategory retrieves a service category by ID.
	GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error)

	// ListActiveCategories retrieves all active service categories.
	ListActiveCategories(ctx context.Context) ([]*domain.ServiceCategory, error)

	// GetVehicleType retrieves a vehicle type by ID.
	GetVehicleType(ctx context.Context, id string) (*domain.VehicleType, error)

	// ListActiveVehicleTypes retrieves all active vehicle types.
	ListActiveVehicleTypes(ctx context.Context) ([]*domain.VehicleType, error)

	// CountActiveCategories returns the number of active categories.
	CountActiveCategories(ctx context.Context) (int, error)
}
