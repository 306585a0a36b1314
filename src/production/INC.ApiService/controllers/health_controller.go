package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/pmlabs1/inc.reader_server/src/production/INC.ApiService/health"
	logger "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Logger"
)

// HealthController handles liveness and readiness requests
type HealthController struct {
	healthChecker *health.HealthChecker
	logger        *logger.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(healthChecker *health.HealthChecker, logger *logger.Logger) *HealthController {
	return &HealthController{
		healthChecker: healthChecker,
		logger:        logger,
	}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health/live", c.HealthLive)
	router.GET("/health/ready", c.HealthReady)
}

func (c *HealthController) HealthLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (c *HealthController) HealthReady(ctx *gin.Context) {
	status := c.healthChecker.GetHealthStatus(ctx)
	code := http.StatusOK
	if status["status"] != "ok" {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}
