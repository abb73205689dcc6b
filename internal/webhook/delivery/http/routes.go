package http

import (
	"github.com/gin-gonic/gin"

	"repo-pulse/internal/middleware"
)

// RegisterRoutes maps the ingestion path and the query/admin paths.
// Other methods on these paths are answered with 405 by the engine.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	ingest := rg.Group("/webhook")
	{
		ingest.POST("", h.Receive)
		ingest.GET("", h.Ready)
	}

	events := rg.Group("/webhooks")
	{
		events.GET("", h.List)
		events.DELETE("", mw.AdminAuth(), h.Clear)
		events.GET("/stats", h.Stats)
	}
}
