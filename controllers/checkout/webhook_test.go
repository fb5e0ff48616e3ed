package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

func newWebhookRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/stripe", WebhookHandler(db))
	return r
}

func completedSessionEvent(t *testing.T, sessionID, userID string, amountCents int64, lines []Line) []byte {
	t.Helper()
	items, err := json.Marshal(lines)
	require.NoError(t, err)

	payload, err := json.Marshal(gin.H{
		"id":   "evt_1",
		"type": "checkout.session.completed",
		"data": gin.H{
			"object": gin.H{
				"id":                  sessionID,
				"client_reference_id": userID,
				"amount_total":        amountCents,
				"metadata":            gin.H{"items": string(items)},
				"shipping_details":    gin.H{"address": gin.H{"city": "Portland", "country": "US"}},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func postWebhook(r *gin.Engine, payload []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookFulfillsSessionExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Slug: "jacket", Name: "Jacket", Price: 59.99, Stock: 4, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	r := newWebhookRouter(db)
	payload := completedSessionEvent(t, "cs_test_1", "user-9", 5999, []Line{
		{ProductID: product.ID, Quantity: 1, UnitPrice: 59.99, Name: "Jacket"},
	})

	// The provider delivers at least once; both deliveries must ack, but only
	// the first creates an order or touches stock.
	w := postWebhook(r, payload)
	require.Equal(t, http.StatusOK, w.Code)
	w = postWebhook(r, payload)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("checkout_session_id = ?", "cs_test_1").First(&order).Error)
	assert.Equal(t, "user-9", order.UserID)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.InDelta(t, 59.99, order.Total, 0.001)
	assert.Contains(t, order.Address, "Portland")

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, 3, updated.Stock)
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db)

	payload, err := json.Marshal(gin.H{"id": "evt_2", "type": "payment_intent.created"})
	require.NoError(t, err)

	w := postWebhook(r, payload)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestWebhookRejectsMissingLineMetadata(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db)

	payload, err := json.Marshal(gin.H{
		"id":   "evt_3",
		"type": "checkout.session.completed",
		"data": gin.H{"object": gin.H{
			"id":                  "cs_test_3",
			"client_reference_id": "user-1",
			"amount_total":        1000,
		}},
	})
	require.NoError(t, err)

	w := postWebhook(r, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookFailedFulfillmentReturns500(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Slug: "boots", Name: "Boots", Price: 80, Stock: 1, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	r := newWebhookRouter(db)
	payload := completedSessionEvent(t, "cs_test_4", "user-1", 16000, []Line{
		{ProductID: product.ID, Quantity: 2, UnitPrice: 80, Name: "Boots"},
	})

	// Insufficient stock rolls the order back; 500 tells the provider to retry.
	w := postWebhook(r, payload)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}
