package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"repo-pulse/pkg/response"
)

// Receive godoc
// @Summary     Receive a GitHub webhook delivery
// @Description Verifies the X-Hub-Signature-256 HMAC, normalizes the payload and stores it.
// @Description A redelivered X-GitHub-Delivery id is acknowledged with the original event id.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true  "Event type"
// @Param       X-GitHub-Delivery   header string false "Delivery id"
// @Param       X-Hub-Signature-256 header string false "sha256=<hex HMAC of the body>"
// @Param       body body object true "Raw event payload"
// @Success     200 {object} ackResp
// @Failure     400 {object} response.Resp "Malformed payload or missing event type"
// @Failure     401 {object} response.Resp "Invalid or missing signature"
// @Failure     403 {object} response.Resp "Source IP not allowed"
// @Failure     413 {object} response.Resp "Payload too large"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Failure     500 {object} response.Resp "Webhook secret not configured"
// @Router      /api/webhook [POST]
func (h *handler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processReceiveReq(c)
	if err != nil {
		h.l.Warnf(ctx, "webhook.delivery.http.Receive: %v (event=%s delivery=%s)", err, req.EventType, req.DeliveryID)
		response.Error(c, h.mapError(err), nil)
		return
	}

	output, err := h.uc.Ingest(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Ingest: %v (event=%s delivery=%s)", err, req.EventType, req.DeliveryID)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.JSON(http.StatusOK, h.newAckResp(output))
}

// Ready godoc
// @Summary     Webhook endpoint readiness
// @Description Lets operators check the payload URL before registering it on GitHub.
// @Tags        Webhook
// @Produce     json
// @Success     200 {object} readyResp
// @Router      /api/webhook [GET]
func (h *handler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, h.newReadyResp(requestURL(c), time.Now()))
}

// List godoc
// @Summary     List stored events
// @Description Returns stored events newest-first as a JSON array. X-Total-Count carries the store size.
// @Tags        Webhook
// @Produce     json
// @Param       type       query string false "Filter by event type"
// @Param       repository query string false "Filter by repository full name"
// @Param       limit      query int    false "Maximum number of events (0 = all)"
// @Success     200 {array}  model.Event
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/webhooks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.Header(headerTotalCount, strconv.Itoa(output.Total))
	c.JSON(http.StatusOK, h.newListResp(output))
}

// Stats godoc
// @Summary     Event store statistics
// @Tags        Webhook
// @Produce     json
// @Success     200 {object} statsResp
// @Router      /api/webhooks/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Stats(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Stats: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.JSON(http.StatusOK, h.newStatsResp(output))
}

// Clear godoc
// @Summary     Clear stored events
// @Description Removes every stored event. Requires a Bearer admin token when one is configured.
// @Tags        Webhook
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} messageResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/webhooks [DELETE]
func (h *handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Clear(ctx); err != nil {
		h.l.Errorf(ctx, "uc.Clear: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.JSON(http.StatusOK, messageResp{Message: messageCleared})
}
