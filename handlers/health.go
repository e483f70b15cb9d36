package handlers

import (
	"net/http"
	"time"

	"vetchat/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /api/health with the latest dependency snapshot.
func HealthHandler(status func() utils.HealthStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := status()
		state := "ok"
		if !snapshot.Healthy() {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Veterinary Chatbot API is running",
			"status":       state,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"dependencies": snapshot,
		})
	}
}
