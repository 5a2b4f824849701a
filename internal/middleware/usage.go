package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/repository"
)

// UsageTrackingMiddleware records one usage log row per authenticated request.
// The insert happens after the response is written so it never adds latency
// to the request path, and failures are logged rather than surfaced.
func UsageTrackingMiddleware(usage repository.UsageRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		userID, ok := auth.CurrentUserID(c)
		if !ok {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		entry := &repository.UsageLog{
			UserID:     userID,
			Endpoint:   path,
			Method:     c.Request.Method,
			StatusCode: c.Writer.Status(),
			DurationMs: time.Since(start).Milliseconds(),
		}

		if err := usage.Record(entry); err != nil {
			log.Warn("failed to record api usage",
				zap.String("endpoint", entry.Endpoint),
				zap.Error(err))
		}
	}
}
