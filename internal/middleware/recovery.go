package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/logger"
)

// Recovery converts a handler panic into a logged 500. The panic is logged
// with the matched route and stack; the client gets the standard error
// envelope unless the handler already started writing the body.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestLog := GetLogger(c)
			if requestLog == nil {
				requestLog = log
			}
			requestLog.Error("Panic recovered", panicError(recovered), map[string]interface{}{
				"request_id": GetRequestID(c),
				"method":     c.Request.Method,
				"route":      routeLabel(c),
				"path":       c.Request.URL.Path,
				"written":    c.Writer.Written(),
				"stack":      string(debug.Stack()),
			})

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":       "INTERNAL_SERVER_ERROR",
					"message":    "An unexpected error occurred",
					"request_id": GetRequestID(c),
				},
			})
		}()

		c.Next()
	}
}

// panicError keeps error panics unwrappable.
func panicError(v interface{}) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
