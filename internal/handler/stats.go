package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/service"
)

// StatsHandler handles HTTP requests for platform statistics.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsResponse is the HTTP response for the platform overview.
type StatsResponse struct {
	TotalOrders      int `json:"total_orders"`
	CompletedOrders  int `json:"completed_orders"`
	OnlineDrivers    int `json:"online_drivers"`
	ActiveCategories int `json:"active_categories"`
}

// Overview handles GET /v1/stats
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatsResponse{
		TotalOrders:      stats.TotalOrders,
		CompletedOrders:  stats.CompletedOrders,
		OnlineDrivers:    stats.OnlineDrivers,
		ActiveCategories: stats.ActiveCategories,
	})
}
