package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zoro-store/zoro-api/config"
)

const signatureTolerance = 5 * time.Minute

// StripeWebhookAuth verifies the Stripe-Signature header before the webhook
// body is processed. Signature failure is terminal: nothing downstream runs.
func StripeWebhookAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.StripeWebhookSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			c.Abort()
			return
		}
		// Body is consumed for signing; restore it for the handler.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		timestamp, signature, err := parseSignatureHeader(c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or malformed signature header"})
			c.Abort()
			return
		}

		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil || time.Since(time.Unix(ts, 0)) > signatureTolerance {
			c.JSON(http.StatusBadRequest, gin.H{"error": "signature timestamp outside tolerance"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(cfg.StripeWebhookSecret))
		mac.Write([]byte(timestamp))
		mac.Write([]byte("."))
		mac.Write(body)
		expected := mac.Sum(nil)

		provided, err := hex.DecodeString(signature)
		if err != nil || !hmac.Equal(expected, provided) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// parseSignatureHeader extracts t and v1 from "t=<ts>,v1=<hex>".
func parseSignatureHeader(header string) (timestamp, signature string, err error) {
	if header == "" {
		return "", "", errMissingSignature
	}
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signature = kv[1]
		}
	}
	if timestamp == "" || signature == "" {
		return "", "", errMissingSignature
	}
	return timestamp, signature, nil
}

var errMissingSignature = errors.New("missing signature components")
