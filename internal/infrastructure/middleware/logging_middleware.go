package middleware

import (
	"time"

	"streamvault/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one structured line per request, enriched with
// whatever identity fields the earlier middleware put into the context.
func LoggingMiddleware(cl *logger.ContextLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		cl.LogRequest(c.Request.Context(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}
