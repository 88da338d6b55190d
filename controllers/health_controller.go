// File: /controllers/health_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	checks map[string]HealthCheck
}

func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ping godoc
// @Summary      Liveness probe
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /ping [get]
func (hc *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health godoc
// @Summary      Readiness probe
// @Description  Reports the database and cache status.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Checks: make(map[string]string, len(hc.checks))}
	status := http.StatusOK
	for name, check := range hc.checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}
