package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	"github.com/zoro-store/zoro-api/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	r.POST("/auth/register", RegisterHandler(db, cfg))
	r.POST("/auth/login", LoginHandler(db, cfg))
	return r
}

func postAuth(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	r := newAuthRouter(db)

	w := postAuth(t, r, "/auth/register", gin.H{
		"email": "zoro@example.com", "password": "secret123", "name": "Zoro",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.RoleUser, reg.User.Role)

	// The stored hash never leaks through the API.
	assert.NotContains(t, w.Body.String(), "secret123")
	assert.NotContains(t, w.Body.String(), "password_hash")

	// Duplicate registration collides on the email.
	w = postAuth(t, r, "/auth/register", gin.H{
		"email": "zoro@example.com", "password": "another1", "name": "Other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Correct credentials log in; the token carries the principal.
	w = postAuth(t, r, "/auth/login", gin.H{"email": "zoro@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token       string `json:"token"`
		MergeStatus string `json:"merge_status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "no-guest-cart", login.MergeStatus)

	token, err := jwt.Parse(login.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.User.ID, claims["user_id"])
	assert.Equal(t, "USER", claims["role"])

	// Wrong password and unknown email are the same 401.
	w = postAuth(t, r, "/auth/login", gin.H{"email": "zoro@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postAuth(t, r, "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMergesGuestCart(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	r := newAuthRouter(db)

	w := postAuth(t, r, "/auth/register", gin.H{
		"email": "nami@example.com", "password": "secret123", "name": "Nami",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	seedGuest(t, db, "guest-42")
	guestCart := models.GuestCart{GuestID: "guest-42"}
	require.NoError(t, db.Create(&guestCart).Error)
	require.NoError(t, db.Create(&models.GuestCartItem{
		CartID: guestCart.CartID, ProductID: 1, Size: "M", Quantity: 2, AddedAt: time.Now(),
	}).Error)

	w = postAuth(t, r, "/auth/login", gin.H{
		"email": "nami@example.com", "password": "secret123", "guest_id": "guest-42",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		MergeStatus string `json:"merge_status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "merged-success", login.MergeStatus)

	var userCart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", reg.User.ID).First(&userCart).Error)
	require.Len(t, userCart.Items, 1)
	assert.Equal(t, 2, userCart.Items[0].Quantity)
}
