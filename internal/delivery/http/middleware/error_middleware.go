package middleware

import (
	"net/http"

	"link1t-backend/internal/delivery/http/response"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.As(err)
		if !ok {
			// SECURITY: never expose internal error details to clients
			appErr = apperror.Internal(err)
		}

		if appErr.Status >= http.StatusInternalServerError {
			logger.Log.ErrorContext(c.Request.Context(), "request failed",
				"request_id", response.RequestID(c),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", appErr.Status,
				"error", err,
			)
		}

		response.Error(c, appErr)
	}
}
