package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"repo-pulse/internal/webhook"
)

// processReceiveReq reads the delivery headers and the raw body. The body is
// kept byte-for-byte since the signature covers the exact bytes sent.
func (h *handler) processReceiveReq(c *gin.Context) (receiveReq, error) {
	req := receiveReq{
		EventType:  c.GetHeader(HeaderEvent),
		DeliveryID: c.GetHeader(HeaderDelivery),
		Signature:  c.GetHeader(HeaderSignature),
		ClientIP:   c.ClientIP(),
	}

	if c.Request.ContentLength > h.maxPayloadBytes {
		return req, webhook.ErrPayloadTooLarge
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPayloadBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, webhook.ErrPayloadTooLarge
		}
		return req, webhook.ErrInvalidPayload
	}
	req.Body = body
	return req, nil
}

// processListReq binds and validates the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, errInvalidLimit
	}
	return req, req.validate()
}

// requestURL rebuilds the absolute URL the client used.
func requestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}
