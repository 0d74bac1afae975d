package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/middleware"
	"github.com/assignhub/assignhub/internal/pkg/metrics"
)

// healthCheckTimeout bounds the store ping on each health probe.
const healthCheckTimeout = 3 * time.Second

// HealthController serves the liveness probe
type HealthController struct {
	store   middleware.Pinger
	metrics metrics.Client
	logger  zerolog.Logger
}

// NewHealthController creates a new HealthController
func NewHealthController(store middleware.Pinger, metricsClient metrics.Client, logger zerolog.Logger) *HealthController {
	return &HealthController{
		store:   store,
		metrics: metricsClient,
		logger:  logger,
	}
}

// Check answers the health probe. The probe carries no payload: a body or
// query parameters answer 405. Responses are never cached.
func (c *HealthController) Check(ctx *gin.Context) {
	c.metrics.Incr(metrics.CounterHealth)
	ctx.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	if ctx.Request.ContentLength > 0 || len(ctx.Request.URL.RawQuery) > 0 {
		ctx.Status(http.StatusMethodNotAllowed)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		c.logger.Error().Err(err).Msg("Health check failed: store unreachable")
		ctx.Status(http.StatusServiceUnavailable)
		return
	}

	ctx.Status(http.StatusOK)
}
