package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks upstream reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness/readiness probes.
type HealthHandler struct {
	upstream Pinger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(upstream Pinger) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness including upstream reachability. The console can
// serve stale slices without the upstream, so an unreachable reporting API
// is reported but still returns 200.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	upstreamOK := true
	if err := h.upstream.Ping(ctx); err != nil {
		upstreamOK = false
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"upstream": upstreamOK,
	})
}
