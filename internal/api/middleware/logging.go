package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
)

// RequestIDHeader is echoed back so client and server logs can be joined
const RequestIDHeader = "X-Request-ID"

// Logging logs one line per request
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if id := c.GetHeader(RequestIDHeader); id != "" {
			c.Header(RequestIDHeader, id)
			c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))
		}

		c.Next()

		status := c.Writer.Status()
		logger := observability.LoggerFromContext(c.Request.Context())
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}
