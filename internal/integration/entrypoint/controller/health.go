package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{dbHealthChecker: dbHealthChecker}
}

// Check handles GET /health requests.
func (c *HealthController) Check(ctx *gin.Context) {
	dbHealthy := c.dbHealthChecker == nil || c.dbHealthChecker()

	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{
		"status":   statusLabel(dbHealthy),
		"database": dbHealthy,
	})
}

func statusLabel(healthy bool) string {
	if healthy {
		return "ok"
	}
	return "degraded"
}
