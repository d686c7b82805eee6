package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/middleware"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "0.1.0"
	// HealthCheckTimeout is the timeout for database health checks
	HealthCheckTimeout = 2 * time.Second
)

// Database is the part of the store handle the health endpoints use.
// *database.Database implements it.
type Database interface {
	Ping(ctx context.Context) error
	Version(ctx context.Context) (string, error)
}

// StoreStatus reports whether the record schema has been set up.
// *controller.Provider implements it.
type StoreStatus interface {
	Ready() bool
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	db        Database
	store     StoreStatus
	startTime time.Time
	env       string
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db Database, store StoreStatus, env string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		store:     store,
		startTime: time.Now(),
		env:       env,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Schema   string `json:"schema"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	Uptime        string `json:"uptime"`
	SQLiteVersion string `json:"sqlite_version,omitempty"`
}

// Health handles GET /health endpoint.
// This is a basic liveness check that always returns 200 OK.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready endpoint.
// Returns 200 once the database answers a ping and the record schema has
// been set up, 503 otherwise.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	schema := "pending"
	if h.store != nil && h.store.Ready() {
		schema = "ready"
	}

	if err := h.db.Ping(ctx); err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"timeout": HealthCheckTimeout.String(),
			})
		}

		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:   "not_ready",
			Database: "disconnected",
			Schema:   schema,
		})
		return
	}

	if schema != "ready" {
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:   "not_ready",
			Database: "connected",
			Schema:   schema,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status:   "ready",
		Database: "connected",
		Schema:   schema,
	})
}

// Info handles GET /api/v1/info endpoint.
// Returns API metadata including version, environment, uptime and the
// embedded SQLite version when it can be read.
func (h *HealthHandler) Info(c *gin.Context) {
	uptime := time.Since(h.startTime)

	response := InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(uptime),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
		defer cancel()
		if version, err := h.db.Version(ctx); err == nil {
			response.SQLiteVersion = version
		}
	}

	c.JSON(http.StatusOK, response)
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
