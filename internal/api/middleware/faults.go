package middleware

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Faults delays every request by latency and fails a share of them with 503,
// so client retry behaviour can be seen against a local backend.
func Faults(rate float64, latency time.Duration, roll func() float64) gin.HandlerFunc {
	if roll == nil {
		roll = rand.Float64
	}

	return func(c *gin.Context) {
		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}

		if rate > 0 && roll() < rate {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"message": "Injected fault",
				"code":    "SERVICE_UNAVAILABLE",
			})
			return
		}

		c.Next()
	}
}
