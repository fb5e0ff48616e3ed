package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/cart", GetUserCart(db))
	r.POST("/cart", AddCartItem(db))
	r.PATCH("/cart/:item_id", UpdateCartItemQuantity(db))
	r.DELETE("/cart/:item_id", RemoveCartItem(db))
	r.DELETE("/cart", ClearUserCart(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Slug:    name,
		Name:    name,
		Price:   price,
		Stock:   stock,
		InStock: stock > 0,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

type cartResponse struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddCartItemAccumulatesAndCaps(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 19.99, 50)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 6, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 6, resp.Items[0].Quantity)

	// Same (product, size, color) accumulates and is clamped at the cap.
	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 6, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, models.MaxLineQuantity, resp.Items[0].Quantity)

	// A different size is a separate line.
	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 1, "size": "L",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Items, 2)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": 999, "quantity": 1, "size": "M",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCartItemRejectsInvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 19.99, 50)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 0, "size": "M",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 10, 50)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 2, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := decodeCart(t, w).Items[0].ID

	// Values above the cap are clamped.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/cart/%d", itemID), gin.H{"quantity": 99})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MaxLineQuantity, decodeCart(t, w).Items[0].Quantity)

	// Negative quantity is rejected.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/cart/%d", itemID), gin.H{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Zero deletes the line.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/cart/%d", itemID), gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestCartItemOwnership(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 10, 50)

	owner := newCartRouter(db, "owner")
	w := doJSON(t, owner, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 1, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := decodeCart(t, w).Items[0].ID

	// Another user touching the line is a permission failure, not a 404.
	intruder := newCartRouter(db, "intruder")
	w = doJSON(t, intruder, http.MethodPatch, fmt.Sprintf("/cart/%d", itemID), gin.H{"quantity": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, intruder, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A line that does not exist at all is a 404.
	w = doJSON(t, intruder, http.MethodPatch, "/cart/99999", gin.H{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartViewUsesLivePrices(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 10, 50)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 2, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 20.0, decodeCart(t, w).Total, 0.001)

	// Price changes show up in an open cart immediately.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", 15.0).Error)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.InDelta(t, 30.0, resp.Total, 0.001)
	assert.InDelta(t, 15.0, resp.Items[0].Price, 0.001)
}

func TestCartSkipsDeletedProducts(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 10, 50)
	r := newCartRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{
		"product_id": p.ID, "quantity": 2, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Delete(&models.Product{}, p.ID).Error)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}

func TestClearUserCart(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "tee", 10, 50)
	r := newCartRouter(db, "user-1")

	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 2, "size": "M"})
	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 1, "size": "L"})

	w := doJSON(t, r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	assert.Empty(t, decodeCart(t, w).Items)
}
