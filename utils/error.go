package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers panics raised by handlers and answers with the same
// {"error", "message"} body the handlers use for failures.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger := zap.L()
			if l, ok := c.Get("logger"); ok {
				if scoped, ok := l.(*zap.Logger); ok {
					logger = scoped
				}
			}
			logger.Error("recovered panic",
				zap.Any("panic", rec),
				zap.String("path", c.FullPath()),
				zap.Stack("stack"))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "An unexpected error occurred. Please try again later.",
			})
		}()
		c.Next()
	}
}
