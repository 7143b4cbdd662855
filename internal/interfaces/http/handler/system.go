package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence"
)

// SystemHandler serves liveness, readiness and build information endpoints.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	version   string
	startedAt time.Time
}

func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		version:   version,
		startedAt: time.Now(),
	}
}

// Ping godoc
// @Summary Liveness probe
// @Description Returns pong when the process is serving requests
// @Tags system
// @Produce json
// @Success 200 {object} dto.Response
// @Router /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}

// GetSystemInfo godoc
// @Summary Build and runtime information
// @Description Returns application name, version, Go runtime and uptime
// @Tags system
// @Produce json
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, gin.H{
		"name":       h.appName,
		"version":    h.version,
		"go_version": runtime.Version(),
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Health godoc
// @Summary Readiness probe
// @Description Checks database connectivity and reports connection pool statistics
// @Tags system
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 503 {object} dto.Response
// @Security BearerAuth
// @Router /system/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, 503, "SERVICE_UNAVAILABLE", "Database is unreachable")
		return
	}

	stats, err := h.db.Stats()
	if err != nil {
		h.Error(c, 503, "SERVICE_UNAVAILABLE", "Database is unreachable")
		return
	}

	h.Success(c, gin.H{
		"status": "healthy",
		"database": gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	})
}
