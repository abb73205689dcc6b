package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"repo-pulse/pkg/response"
)

const bearerPrefix = "Bearer "

// AdminAuth guards destructive admin routes with the configured bearer token.
func (mw Middleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.adminToken == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(mw.adminToken)) != 1 {
			mw.l.Warnf(c.Request.Context(), "middleware.AdminAuth: rejected %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
