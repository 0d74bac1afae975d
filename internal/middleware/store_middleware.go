package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/assignhub/assignhub/internal/app/models/dto"
)

// storePingTimeout bounds the availability probe run before each request.
const storePingTimeout = 3 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireStore short-circuits a request with 503 when the store cannot be
// reached, before any handler logic runs.
func RequireStore(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storePingTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Service unavailable")))
			return
		}

		c.Next()
	}
}
