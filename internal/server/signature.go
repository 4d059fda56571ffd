package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// Signature headers checked in order. FeexPay has shipped both spellings.
var signatureHeaders = []string{"X-Feexpay-Signature", "X-Signature"}

// verifySignature checks the HMAC-SHA256 hex digest of the raw body
// against the provided header. The caller skips the check entirely when no
// secret is configured.
func verifySignature(secret string, payload []byte, headers http.Header) error {
	provided := ""
	for _, name := range signatureHeaders {
		if v := strings.TrimSpace(headers.Get(name)); v != "" {
			provided = v
			break
		}
	}
	if provided == "" {
		return ErrUnauthorized
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(expected)) {
		return ErrUnauthorized
	}
	return nil
}
