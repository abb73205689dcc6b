package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"

	"repo-pulse/internal/model"
)

// ErrNotObject is returned when the body is not a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

// Normalize builds the canonical event for one delivery. Missing optional
// fields and unknown event types are not errors: they produce "unknown"
// defaults and an event without a summary. body is never modified.
func (n *Normalizer) Normalize(eventType string, body []byte, deliveryID string) (model.Event, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.Event{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if raw == nil {
		return model.Event{}, ErrNotObject
	}

	payload := Sanitize(raw)
	// Only the normalizer writes the summary slot.
	delete(payload, SummaryKey)
	if summary, ok := n.Summarize(eventType, body); ok {
		payload[SummaryKey] = summary
	}

	return model.Event{
		ID:         n.newID(),
		Type:       eventType,
		Payload:    payload,
		Timestamp:  n.now().UTC(),
		Repository: stringAt(raw, "repository", "full_name"),
		Sender:     stringAt(raw, "sender", "login"),
		DeliveryID: deliveryID,
	}, nil
}

// Summarize returns the summary for a known event type. A summarizer that
// cannot read the body yields no summary rather than an error.
func (n *Normalizer) Summarize(eventType string, body []byte) (Summary, bool) {
	fn, ok := n.summarizers[eventType]
	if !ok {
		return nil, false
	}
	summary, err := fn(body)
	if err != nil || summary == nil {
		return nil, false
	}
	return summary, true
}

// Supports reports whether eventType has a summarizer.
func (n *Normalizer) Supports(eventType string) bool {
	_, ok := n.summarizers[eventType]
	return ok
}

// stringAt reads a nested non-empty string, falling back to model.Unknown.
func stringAt(obj map[string]any, keys ...string) string {
	var cur any = obj
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return model.Unknown
		}
		cur = m[key]
	}
	if s, ok := cur.(string); ok && s != "" {
		return s
	}
	return model.Unknown
}
