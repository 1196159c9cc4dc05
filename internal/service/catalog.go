package service

import (
	"context"

	"marketplace/internal/domain"
	internalredis "marketplace/internal/redis"
	"marketplace/internal/repository"
)

// CatalogService serves the platform catalog of service categories and
// vehicle types, reading through the Redis cache on the quote path.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cache       *internalredis.CatalogCache
}

// NewCatalogService creates a new CatalogService. The cache may be nil.
func NewCatalogService(catalogRepo repository.CatalogRepository, cache *internalredis.CatalogCache) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

// GetCategory retrieves a service category, cache first.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCategory(ctx, id)
		if err == nil && cached != nil {
			return cachedToCategory(cached), nil
		}
		// Cache errors fall through to the repository.
	}

	category, err := s.catalogRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetCategory(ctx, categoryToCached(category))
	}

	return category, nil
}

// GetVehicleType retrieves a vehicle type, cache first.
func (s *CatalogService) GetVehicleType(ctx context.Context, id string) (*domain.VehicleType, error) {
	if s.cache != nil {
		cached, err := s.cache.GetVehicleType(ctx, id)
		if err == nil && cached != nil {
			return cachedToVehicleType(cached), nil
		}
	}

	vt, err := s.catalogRepo.GetVehicleType(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetVehicleType(ctx, vehicleTypeToCached(vt))
	}

	return vt, nil
}

// ListActiveCategories retrieves all active service categories.
func (s *CatalogService) ListActiveCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	return s.catalogRepo.ListActiveCategories(ctx)
}

// ListActiveVehicleTypes retrieves all active vehicle types.
func (s *CatalogService) ListActiveVehicleTypes(ctx context.Context) ([]*domain.VehicleType, error) {
	return s.catalogRepo.ListActiveVehicleTypes(ctx)
}

// CountActiveCategories returns the number of active categories.
func (s *CatalogService) CountActiveCategories(ctx context.Context) (int, error) {
	return s.catalogRepo.CountActiveCategories(ctx)
}

func cachedToCategory(c *internalredis.CachedCategory) *domain.ServiceCategory {
	category := &domain.ServiceCategory{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		Description:    c.Description,
		BaseFare:       domain.Money(c.BaseFare),
		PricePerKm:     domain.Money(c.PricePerKm),
		PricePerMinute: domain.Money(c.PricePerMinute),
		MinimumFare:    domain.Money(c.MinimumFare),
		CommissionRate: c.CommissionRate,
		IsActive:       c.IsActive,
	}
	if c.MaximumFare != nil {
		max := domain.Money(*c.MaximumFare)
		category.MaximumFare = &max
	}
	return category
}

func categoryToCached(category *domain.ServiceCategory) *internalredis.CachedCategory {
	cached := &internalredis.CachedCategory{
		ID:             category.ID,
		Name:           category.Name,
		Slug:           category.Slug,
		Description:    category.Description,
		BaseFare:       int64(category.BaseFare),
		PricePerKm:     int64(category.PricePerKm),
		PricePerMinute: int64(category.PricePerMinute),
		MinimumFare:    int64(category.MinimumFare),
		CommissionRate: category.CommissionRate,
		IsActive:       category.IsActive,
	}
	if category.MaximumFare != nil {
		max := int64(*category.MaximumFare)
		cached.MaximumFare = &max
	}
	return cached
}

func cachedToVehicleType(c *internalredis.CachedVehicleType) *domain.VehicleType {
	return &domain.VehicleType{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		Capacity:        c.Capacity,
		PriceMultiplier: c.PriceMultiplier,
		IsActive:        c.IsActive,
	}
}

func vehicleTypeToCached(vt *domain.VehicleType) *internalredis.CachedVehicleType {
	return &internalredis.CachedVehicleType{
		ID:              vt.ID,
		Name:            vt.Name,
		Slug:            vt.Slug,
		Description:     vt.Description,
		Capacity:        vt.Capacity,
		PriceMultiplier: vt.PriceMultiplier,
		IsActive:        vt.IsActive,
	}
}
