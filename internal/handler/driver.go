package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/service"
)

// DriverHandler handles HTTP requests for driver presence.
type DriverHandler struct {
	presenceService *service.PresenceService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(presenceService *service.PresenceService) *DriverHandler {
	return &DriverHandler{presenceService: presenceService}
}

// GoOnline handles POST /v1/drivers/:id/online
func (h *DriverHandler) GoOnline(c *gin.Context) {
	driverID := c.Param("id")

	if err := h.presenceService.SetOnline(c.Request.Context(), driverID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"driver_id": driverID, "online": true})
}

// GoOffline handles POST /v1/drivers/:id/offline
func (h *DriverHandler) GoOffline(c *gin.Context) {
	driverID := c.Param("id")

	if err := h.presenceService.SetOffline(c.Request.Context(), driverID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"driver_id": driverID, "online": false})
}
