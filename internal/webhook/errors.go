package webhook

import "errors"

var (
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrMissingSignature    = errors.New("missing signature")
	ErrMissingEventType    = errors.New("missing event type")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrIPNotAllowed        = errors.New("ip not allowed")
)
