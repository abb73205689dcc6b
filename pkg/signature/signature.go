// Package signature signs and verifies webhook bodies with the
// "sha256=<hex>" HMAC scheme used by GitHub's X-Hub-Signature-256 header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix precedes the hex digest in the signature header.
const Prefix = "sha256="

// Sign returns the header value for body keyed by secret.
func Sign(body []byte, secret string) string {
	return Prefix + hex.EncodeToString(digest(body, secret))
}

// Verify reports whether header is a valid signature of body under secret.
// It never fails loudly: a missing secret, a missing or malformed header and
// a mismatch all return false. The digest comparison is constant time.
func Verify(body []byte, header, secret string) bool {
	if secret == "" || header == "" {
		return false
	}
	if !strings.HasPrefix(header, Prefix) {
		return false
	}

	provided, err := hex.DecodeString(header[len(Prefix):])
	if err != nil {
		return false
	}

	return hmac.Equal(provided, digest(body, secret))
}

func digest(body []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}
