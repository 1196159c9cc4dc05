package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// CatalogHandler handles HTTP requests for fare reference data.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CategoryResponse is the HTTP representation of a service category.
type CategoryResponse struct {
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

// VehicleTypeResponse is the HTTP representation of a vehicle type.
type VehicleTypeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description,omitempty"`
	Capacity        int     `json:"capacity"`
	PriceMultiplier float64 `json:"price_multiplier"`
	IsActive        bool    `json:"is_active"`
}

func toCategoryResponse(cat *domain.ServiceCategory) CategoryResponse {
	resp := CategoryResponse{
		ID:             cat.ID,
		Name:           cat.Name,
		Slug:           cat.Slug,
		Description:    cat.Description,
		BaseFare:       int64(cat.BaseFare),
		PricePerKm:     int64(cat.PricePerKm),
		PricePerMinute: int64(cat.PricePerMinute),
		MinimumFare:    int64(cat.MinimumFare),
		CommissionRate: cat.CommissionRate,
		IsActive:       cat.IsActive,
	}
	if cat.MaximumFare != nil {
		max := int64(*cat.MaximumFare)
		resp.MaximumFare = &max
	}
	return resp
}

func toVehicleTypeResponse(vt *domain.VehicleType) VehicleTypeResponse {
	return VehicleTypeResponse{
		ID:              vt.ID,
		Name:            vt.Name,
		Slug:            vt.Slug,
		Description:     vt.Description,
		Capacity:        vt.Capacity,
		PriceMultiplier: vt.PriceMultiplier,
		IsActive:        vt.IsActive,
	}
}

// ListCategories handles GET /v1/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListActiveCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, toCategoryResponse(cat))
	}

	respondJSON(c, http.StatusOK, gin.H{"categories": responses, "count": len(responses)})
}

// GetCategory handles GET /v1/catalog/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCategoryResponse(category))
}

// ListVehicleTypes handles GET /v1/catalog/vehicle-types
func (h *CatalogHandler) ListVehicleTypes(c *gin.Context) {
	types, err := h.catalogService.ListActiveVehicleTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]VehicleTypeResponse, 0, len(types))
	for _, vt := range types {
		responses = append(responses, toVehicleTypeResponse(vt))
	}

	respondJSON(c, http.StatusOK, gin.H{"vehicle_types": responses, "count": len(responses)})
}
