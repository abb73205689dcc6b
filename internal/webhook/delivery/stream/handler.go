package stream

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"repo-pulse/pkg/log"
)

type Handler struct {
	l        log.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler serves websocket subscriptions on hub.
func NewHandler(l log.Logger, hub *Hub) *Handler {
	return &Handler{
		l:   l,
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Subscribe godoc
// @Summary     Live event stream
// @Description Upgrades to a websocket that receives every newly stored event as JSON.
// @Description Send {"type":"subscribe","events":["push"]} to filter by event type.
// @Tags        Webhook
// @Router      /api/webhooks/stream [GET]
func (h *Handler) Subscribe(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(ctx, "stream.Subscribe: upgrade failed: %v", err)
		return
	}

	client := newClient(h.hub, conn)
	if !h.hub.join(client) {
		_ = conn.Close()
		return
	}
	h.l.Infof(ctx, "stream.Subscribe: connected %s", conn.RemoteAddr())

	go client.writePump()
	client.readPump(ctx)

	h.l.Infof(ctx, "stream.Subscribe: disconnected %s", conn.RemoteAddr())
}

// RegisterRoutes maps the stream endpoint under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/webhooks/stream", h.Subscribe)
}
