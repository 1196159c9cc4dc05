package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogCache caches service category and vehicle type reference data
// in Redis. The catalog is administrator managed and rarely mutated, so
// quote-path reads go through here first.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// CatalogCacheTTL bounds staleness after an admin edits the catalog.
const CatalogCacheTTL = 5 * time.Minute

const (
	categoryCachePrefix    = "cache:category:"
	vehicleTypeCachePrefix = "cache:vehicle_type:"
)

// CachedCategory is the cached projection of a service category. Fare
// amounts are minor units.
type CachedCategory struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description,omitempty"`
	BaseFare       int64   `json:"base_fare"`
	PricePerKm     int64   `json:"price_per_km"`
	PricePerMinute int64   `json:"price_per_minute"`
	MinimumFare    int64   `json:"minimum_fare"`
	MaximumFare    *int64  `json:"maximum_fare,omitempty"`
	CommissionRate float64 `json:"commission_rate"`
	IsActive       bool    `json:"is_active"`
}

// CachedVehicleType is the cached projection of a vehicle type.
type CachedVehicleType struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description,omitempty"`
	Capacity        int     `json:"capacity"`
	PriceMultiplier float64 `json:"price_multiplier"`
	IsActive        bool    `json:"is_active"`
}

// GetCategory retrieves a category from cache. A nil result with nil
// error is a cache miss.
func (c *CatalogCache) GetCategory(ctx context.Context, id string) (*CachedCategory, error) {
	data, err := c.client.Get(ctx, categoryCachePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var category CachedCategory
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// SetCategory stores a category in cache.
func (c *CatalogCache) SetCategory(ctx context.Context, category *CachedCategory) error {
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryCachePrefix+category.ID, data, CatalogCacheTTL).Err()
}

// InvalidateCategory removes a category from cache.
func (c *CatalogCache) InvalidateCategory(ctx context.Context, id string) error {
	return c.client.Del(ctx, categoryCachePrefix+id).Err()
}

// GetVehicleType retrieves a vehicle type from cache. A nil result with
// nil error is a cache miss.
func (c *CatalogCache) GetVehicleType(ctx context.Context, id string) (*CachedVehicleType, error) {
	data, err := c.client.Get(ctx, vehicleTypeCachePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vt CachedVehicleType
	if err := json.Unmarshal(data, &vt); err != nil {
		return nil, err
	}
	return &vt, nil
}

// SetVehicleType stores a vehicle type in cache.
func (c *CatalogCache) SetVehicleType(ctx context.Context, vt *CachedVehicleType) error {
	data, err := json.Marshal(vt)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehicleTypeCachePrefix+vt.ID, data, CatalogCacheTTL).Err()
}

// InvalidateVehicleType removes a vehicle type from cache.
func (c *CatalogCache) InvalidateVehicleType(ctx context.Context, id string) error {
	return c.client.Del(ctx, vehicleTypeCachePrefix+id).Err()
}
