package http

import (
	"errors"
	"net/http"

	"repo-pulse/internal/webhook"
	pkgErrors "repo-pulse/pkg/errors"
)

var errInvalidLimit = pkgErrors.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, webhook.ErrSecretNotConfigured):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Webhook secret not configured")
	case errors.Is(err, webhook.ErrInvalidSignature):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "Invalid signature")
	case errors.Is(err, webhook.ErrMissingSignature):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "Missing signature")
	case errors.Is(err, webhook.ErrIPNotAllowed):
		return pkgErrors.NewHTTPError(http.StatusForbidden, "IP not allowed")
	case errors.Is(err, webhook.ErrRateLimited):
		return pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
	case errors.Is(err, webhook.ErrPayloadTooLarge):
		return pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "Payload too large")
	case errors.Is(err, webhook.ErrMissingEventType):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Missing X-GitHub-Event header")
	case errors.Is(err, webhook.ErrInvalidPayload):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid payload: body must be a JSON object")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
