package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"shiptrack/internal/caching"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
	}
}

// HealthCheck reports that the server is up
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Server is running!",
	})
}

// ReadinessCheck verifies that critical dependencies are reachable
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	services := map[string]string{
		"database": "healthy",
		"redis":    "healthy",
	}
	ready := true

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		services["database"] = "unhealthy"
		ready = false
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		services["redis"] = "unhealthy"
		ready = false
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"services": services,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"services": services,
	})
}
