package normalizer

import (
	"strings"

	"repo-pulse/internal/model"
)

// Sanitize returns a deep copy of payload without the sensitive fields.
// The argument is left untouched and missing fields are ignored, so applying
// Sanitize to its own output is a no-op.
func Sanitize(payload map[string]any) map[string]any {
	sanitized := model.ClonePayload(payload)
	if sanitized == nil {
		sanitized = map[string]any{}
	}

	for _, field := range sensitiveFields {
		removePath(sanitized, strings.Split(field, "."))
	}
	return sanitized
}

// removePath deletes the leaf named by keys, walking nested objects only.
func removePath(obj map[string]any, keys []string) {
	for _, key := range keys[:len(keys)-1] {
		next, ok := obj[key].(map[string]any)
		if !ok {
			return
		}
		obj = next
	}
	delete(obj, keys[len(keys)-1])
}
