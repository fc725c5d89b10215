package logger

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID makes sure every request carries an id, either the caller's
// X-Request-Id or a fresh uuid, and echoes it back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("requestID", rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

// RequestIDFrom extracts the request id stored by RequestID.
func RequestIDFrom(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// AccessLog writes one line per request to the access logger.
func AccessLog() gin.HandlerFunc {
	access := GetLogger("access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := access.WithFields(logrus.Fields{
			"requestId": RequestIDFrom(c.Request.Context()),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"clientIp":  c.ClientIP(),
		})
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
