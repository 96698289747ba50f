package handlers

import (
	"happyhotel/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLogger returns the request-scoped logger set by the middleware,
// or fallback when the route runs without it.
func requestLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return fallback
}
