package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/tokpa/feexgate/internal/order/domain"
)

// HandleFeexpayWebhook receives one payment-status notification. The raw
// body is read before decoding so the signature covers the exact bytes the
// provider signed.
func (s *Server) HandleFeexpayWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if s.cfg.SignatureRequired() {
		if err := verifySignature(s.cfg.WebhookSecret, payload, c.Request.Header); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	var notification orderdomain.Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_json", "invalid JSON body"))
		return
	}

	if _, err := s.orderSvc.Process(c.Request.Context(), notification); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
