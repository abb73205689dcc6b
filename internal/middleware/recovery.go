package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"repo-pulse/pkg/response"
)

// Recovery turns a handler panic into a logged 500 with the standard error body.
func (mw Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("panic: %v", recovered)
		mw.l.Errorf(c.Request.Context(), "middleware.Recovery: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.InternalError(c, err)
	})
}
