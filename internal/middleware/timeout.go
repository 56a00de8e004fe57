package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/config"
)

// RequestTimeout bounds each request's context with the configured deadline.
// Services pass this context into GORM, so no storage call can block past it;
// expiry surfaces as a storage error on whichever query was in flight.
func RequestTimeout() gin.HandlerFunc {
	timeout := config.Get().RequestTimeout
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
