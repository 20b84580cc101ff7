package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccessLog writes one structured entry per request.
func AccessLog(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"requestId": c.GetString(RequestIDKey),
			"method":    c.Request.Method,
			"path":      path,
			"query":     c.Request.URL.RawQuery,
			"status":    c.Writer.Status(),
			"latencyMs": float64(time.Since(start)) / float64(time.Millisecond),
			"ip":        c.ClientIP(),
			"size":      c.Writer.Size(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
