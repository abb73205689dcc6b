package model

import "time"

// Unknown is stored when a repository or sender cannot be extracted.
const Unknown = "unknown"

// Event is the canonical record of one accepted webhook delivery.
// It is built once at ingestion and never modified afterwards. The store keeps
// its own copy and hands out clones, so callers may not alter what is stored.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	Timestamp  time.Time      `json:"timestamp"` // ingestion time, not provider time
	Repository string         `json:"repository"`
	Sender     string         `json:"sender"`
	DeliveryID string         `json:"deliveryId"`
	Verified   bool           `json:"verified"` // false when accepted without a signature
}

// Clone returns a copy of e whose Payload shares no maps or slices with e.
func (e Event) Clone() Event {
	e.Payload = ClonePayload(e.Payload)
	return e
}

// ClonePayload deep-copies a decoded JSON object. A nil map stays nil.
func ClonePayload(payload map[string]any) map[string]any {
	out, _ := cloneValue(payload).(map[string]any)
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return map[string]any(nil)
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		// JSON scalars and summary values
		return t
	}
}
