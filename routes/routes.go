package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	productControllers "github.com/zoro-store/zoro-api/controllers/product"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public catalog (no middleware)
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id_or_slug", productControllers.GetProduct(db))

	// Public auth routes
	SetupAuthRoutes(r, db, cfg)

	// Guest routes (cart/wishlist keyed by guest_id)
	SetupGuestRoutes(r, db, cfg)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// Checkout + payment webhook
	SetupCheckoutRoutes(r, db, cfg)

	// Admin routes (JWT + role re-check)
	SetupAdminRoutes(r, db, cfg)
}
