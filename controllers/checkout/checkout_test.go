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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	"github.com/zoro-store/zoro-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// mockConfig selects the synchronous demo payment path.
func mockConfig() *config.Config {
	return &config.Config{
		FrontendBaseURL: "http://localhost:3000",
	}
}

func newCheckoutRouter(db *gorm.DB, cfg *config.Config, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/checkout", CheckoutHandler(db, cfg))
	return r
}

func postCheckout(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/checkout", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMockCheckoutCreatesPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Slug: "hoodie", Name: "Hoodie", Price: 14.99, Stock: 5, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	r := newCheckoutRouter(db, mockConfig(), "user-1")
	w := postCheckout(t, r, gin.H{"items": []gin.H{{"product_id": product.ID, "quantity": 2}}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		URL  string `json:"url"`
		Mock bool   `json:"mock"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Mock)
	assert.Contains(t, resp.URL, "session_id=mock_session_")

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.InDelta(t, 29.98, order.Total, 0.001)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 14.99, order.Items[0].Price, 0.001)

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, 3, updated.Stock)
	assert.True(t, updated.InStock)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Slug: "cap", Name: "Cap", Price: 9.99, Stock: 3, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	r := newCheckoutRouter(db, mockConfig(), "user-1")
	w := postCheckout(t, r, gin.H{"items": []gin.H{{"product_id": product.ID, "quantity": 10}}})
	assert.Equal(t, http.StatusConflict, w.Code)

	// No order, no decrement.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)

	var unchanged models.Product
	require.NoError(t, db.First(&unchanged, product.ID).Error)
	assert.Equal(t, 3, unchanged.Stock)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newCheckoutRouter(db, mockConfig(), "user-1")

	w := postCheckout(t, r, gin.H{"items": []gin.H{{"product_id": 12345, "quantity": 1}}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutRejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	r := newCheckoutRouter(db, mockConfig(), "user-1")

	w := postCheckout(t, r, gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutStockDepletionMarksOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Slug: "belt", Name: "Belt", Price: 5, Stock: 2, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	r := newCheckoutRouter(db, mockConfig(), "user-1")
	w := postCheckout(t, r, gin.H{"items": []gin.H{{"product_id": product.ID, "quantity": 2}}})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, updated.InStock)
}
