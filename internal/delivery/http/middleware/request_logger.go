package middleware

import (
	"log/slog"
	"time"

	"link1t-backend/internal/delivery/http/response"
	"link1t-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		logger.Log.Log(c.Request.Context(), level, "http request",
			"request_id", response.RequestID(c),
			"method", c.Request.Method,
			"route", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		)
	}
}
