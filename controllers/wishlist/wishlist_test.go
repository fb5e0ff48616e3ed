package wishlistControllers

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
		&models.Wishlist{},
		&models.WishlistItem{},
	))
	return db
}

func newWishlistRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/wishlist", GetWishlist(db))
	r.POST("/wishlist", AddWishlistItem(db))
	r.DELETE("/wishlist/:product_id", RemoveWishlistItem(db))
	r.DELETE("/wishlist", ClearWishlist(db))
	return r
}

func doWishlist(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func decodeLines(t *testing.T, w *httptest.ResponseRecorder) []WishlistLine {
	t.Helper()
	var lines []WishlistLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	return lines
}

func TestAddWishlistItemIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	p := models.Product{Slug: "tee", Name: "Tee", Price: 19.99, Stock: 5, InStock: true}
	require.NoError(t, db.Create(&p).Error)
	r := newWishlistRouter(db, "user-1")

	w := doWishlist(t, r, http.MethodPost, "/wishlist", gin.H{"product_id": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLines(t, w), 1)

	// Re-adding the same product is a no-op, not an error.
	w = doWishlist(t, r, http.MethodPost, "/wishlist", gin.H{"product_id": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLines(t, w), 1)
}

func TestAddWishlistItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newWishlistRouter(db, "user-1")

	w := doWishlist(t, r, http.MethodPost, "/wishlist", gin.H{"product_id": 404})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveWishlistItem(t *testing.T) {
	db := setupTestDB(t)
	p := models.Product{Slug: "tee", Name: "Tee", Price: 19.99, Stock: 5, InStock: true}
	require.NoError(t, db.Create(&p).Error)
	r := newWishlistRouter(db, "user-1")

	doWishlist(t, r, http.MethodPost, "/wishlist", gin.H{"product_id": p.ID})

	w := doWishlist(t, r, http.MethodDelete, fmt.Sprintf("/wishlist/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing an absent entry is a 404.
	w = doWishlist(t, r, http.MethodDelete, fmt.Sprintf("/wishlist/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doWishlist(t, r, http.MethodGet, "/wishlist", nil)
	assert.Empty(t, decodeLines(t, w))
}

func TestWishlistsAreIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	p := models.Product{Slug: "tee", Name: "Tee", Price: 19.99, Stock: 5, InStock: true}
	require.NoError(t, db.Create(&p).Error)

	alice := newWishlistRouter(db, "alice")
	bob := newWishlistRouter(db, "bob")

	doWishlist(t, alice, http.MethodPost, "/wishlist", gin.H{"product_id": p.ID})

	w := doWishlist(t, bob, http.MethodGet, "/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeLines(t, w))
}
