package checkoutControllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/zoro-store/zoro-api/controllers/order"
)

type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object webhookSession `json:"object"`
	} `json:"data"`
}

type webhookSession struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	AmountTotal       int64             `json:"amount_total"`
	Metadata          map[string]string `json:"metadata"`
	ShippingDetails   json.RawMessage   `json:"shipping_details"`
}

// POST /webhook/stripe (behind StripeWebhookAuth)
//
// The provider delivers at least once, so duplicate events are the normal
// case: fulfillment checks for an existing order by session id first and acks
// without side effects. Any failure after signature verification returns 500
// so the provider retries the delivery.
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event webhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		session := event.Data.Object
		if session.ID == "" || session.ClientReferenceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id or client reference missing"})
			return
		}

		lines, err := metadataLines(session.Metadata["items"])
		if err != nil {
			log.Println("❌ Webhook session", session.ID, "has unusable line metadata:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "line metadata missing"})
			return
		}

		address := "{}"
		if len(session.ShippingDetails) > 0 {
			address = string(session.ShippingDetails)
		}

		order, err := FulfillCheckout(
			db,
			session.ID,
			session.ClientReferenceID,
			address,
			lines,
			float64(session.AmountTotal)/100,
		)
		if errors.Is(err, ErrAlreadyProcessed) {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		if err != nil {
			log.Println("❌ Webhook fulfillment failed for session", session.ID, ":", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fulfillment failed"})
			return
		}

		orderControllers.BroadcastNewOrder(*order)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
