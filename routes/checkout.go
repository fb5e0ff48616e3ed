package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	checkoutControllers "github.com/zoro-store/zoro-api/controllers/checkout"
	"github.com/zoro-store/zoro-api/middleware"
)

// SetupCheckoutRoutes registers the checkout endpoint and the payment
// provider webhook. The webhook is authenticated by signature, not JWT.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/checkout", middleware.ValidateToken(cfg), checkoutControllers.CheckoutHandler(db, cfg))
	r.POST("/webhook/stripe", middleware.StripeWebhookAuth(cfg), checkoutControllers.WebhookHandler(db))
}
