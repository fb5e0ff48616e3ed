package checkoutControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	orderControllers "github.com/zoro-store/zoro-api/controllers/order"
	"github.com/zoro-store/zoro-api/models"
	"github.com/zoro-store/zoro-api/payments"
)

type CheckoutItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items []CheckoutItemInput `json:"items" binding:"required,min=1,dive"`
}

// mockAddress is the placeholder shipping snapshot for demo orders.
const mockAddress = `{"line1":"Mock Address","city":"Mock City","country":"US"}`

// POST /checkout
//
// Validates every line against the live catalog, computes the total from
// server-looked-up prices only, then either creates a PAID order directly
// (mock mode) or opens a hosted payment session and defers order creation to
// the webhook. No partial checkout: any failing line rejects the request.
func CheckoutHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var lines []Line
		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found: %d", item.ProductID)})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
				return
			}
			if product.Stock < item.Quantity {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for " + product.Name})
				return
			}

			lines = append(lines, Line{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Name:      product.Name,
				Image:     product.FirstImage(),
			})
			total += product.Price * float64(item.Quantity)
		}

		if cfg.MockPayments() {
			sessionID := "mock_session_" + uuid.NewString()
			order, err := FulfillCheckout(db, sessionID, userID, mockAddress, lines, total)
			if err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
					return
				}
				log.Println("❌ Mock checkout failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
				return
			}
			orderControllers.BroadcastNewOrder(*order)

			c.JSON(http.StatusOK, gin.H{
				"url":  fmt.Sprintf("%s/checkout/success?session_id=%s", cfg.FrontendBaseURL, sessionID),
				"mock": true,
			})
			return
		}

		sessionLines := make([]payments.SessionLine, 0, len(lines))
		for _, l := range lines {
			sessionLines = append(sessionLines, payments.SessionLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Name:      l.Name,
				Image:     l.Image,
			})
		}

		client := payments.NewClient(cfg)
		sessionID, redirectURL, err := payments.CreateCheckoutSession(
			client,
			userID,
			sessionLines,
			cfg.FrontendBaseURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			cfg.FrontendBaseURL+"/checkout/cancel",
		)
		if err != nil {
			log.Println("❌ Failed to create checkout session:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "url": redirectURL})
	}
}

// metadataLines decodes the line list a session carried in its metadata.
func metadataLines(raw string) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("empty line metadata")
	}
	return lines, nil
}
