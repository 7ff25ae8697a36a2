package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/agriance/contractgen/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler, typically inside PDF rendering, into
// a 500 response carrying the request ID. A response that was already
// started is left as is and the connection aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			attrs := []any{
				"panic", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			}
			if number := c.GetString(ContextContractNumber); number != "" {
				attrs = append(attrs, ContextContractNumber, number)
			}
			logger.Error(c.Request.Context(), "panic recovered", attrs...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": GetRequestID(c),
			})
		}()

		c.Next()
	}
}
