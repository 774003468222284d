package mockbackend

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		apiErr := toAPIError(c.Errors.Last().Err)
		if apiErr.status >= http.StatusInternalServerError {
			logger.Error("request failed", "status", apiErr.status, "path", c.Request.URL.Path, "error", apiErr)
		} else {
			logger.Warn("request rejected", "status", apiErr.status, "path", c.Request.URL.Path, "error", apiErr)
		}
		c.JSON(apiErr.status, apiErr.body())
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
