package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
)

// Tracing wraps every request in a span named after its route
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Use route pattern instead of raw path to avoid high cardinality
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := observability.StartServerSpan(c.Request.Context(), c.Request.Method+" "+route)
		defer span.End()

		observability.SetSpanAttributes(span,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.user_agent", c.Request.UserAgent()),
		)

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		observability.SetSpanAttributes(span, attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
