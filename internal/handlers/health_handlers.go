package handlers

import (
	"net/http"
	"time"

	"flexgestor/pkg/database"

	"github.com/labstack/echo/v4"
)

// HealthHandlers reports the results of the background connectivity probes
type HealthHandlers struct {
	dbHealth    *database.Health
	cacheHealth *database.Health
	startedAt   time.Time
}

// NewHealthHandlers creates a new health handlers instance. cacheHealth may be nil.
func NewHealthHandlers(dbHealth, cacheHealth *database.Health) *HealthHandlers {
	return &HealthHandlers{
		dbHealth:    dbHealth,
		cacheHealth: cacheHealth,
		startedAt:   time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Success   bool              `json:"success"`
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
	Uptime    string            `json:"uptime"`
}

// HealthCheck handles GET /health (liveness)
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Success:   true,
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// ReadinessCheck handles GET /health/ready. Only the database gates readiness;
// a cache outage degrades the service without stopping it.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	health := HealthStatus{
		Success:   true,
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  map[string]string{},
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	statusCode := http.StatusOK
	if h.dbHealth.Healthy() {
		health.Services["database"] = "healthy"
	} else {
		health.Services["database"] = "unhealthy"
		health.Status = "not ready"
		health.Success = false
		statusCode = http.StatusServiceUnavailable
	}

	if h.cacheHealth != nil {
		if h.cacheHealth.Healthy() {
			health.Services["redis"] = "healthy"
		} else {
			health.Services["redis"] = "unhealthy"
			if health.Success {
				health.Status = "degraded"
			}
		}
	}

	return c.JSON(statusCode, health)
}
