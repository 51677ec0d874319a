package handlers

import (
	"net/http"

	"swatrental/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	// MemoryStorage is true when no Mongo backend is expected.
	MemoryStorage bool
}

// Health reports the last dependency snapshot taken by the health monitor.
func (h *HealthHandler) Health(c *gin.Context) {
	status := utils.GetHealthStatus()

	healthy := status.Mongo || h.MemoryStorage
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"success": healthy,
		"message": "Swat Car Rental API",
		"data":    status,
	})
}
