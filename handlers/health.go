package handlers

import (
	"net/http"

	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest monitor snapshot. The
// service stays up while durable storage is degraded, so this is always 200.
func HealthHandler(c *gin.Context) {
	health := utils.GetHealthStatus()
	status := "ok"
	if health.DurableDegraded || !health.Mongo {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"message":  "Hi, I'm LawyerConnect",
		"services": health,
	})
}
