package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/auth"
	"github.com/zoro-store/zoro-api/config"
	cartControllers "github.com/zoro-store/zoro-api/controllers/cart"
	wishlistControllers "github.com/zoro-store/zoro-api/controllers/wishlist"
)

// SetupGuestRoutes registers the anonymous-shopper surface. Every cart and
// wishlist endpoint here is keyed by the guest_id query parameter.
func SetupGuestRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	guestGroup := r.Group("/guest")
	{
		guestGroup.POST("/", auth.CreateGuestUser(db, cfg))

		cartGroup := guestGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetGuestCart(db))
			cartGroup.POST("/", cartControllers.AddGuestCartItem(db))
			cartGroup.PATCH("/:item_id", cartControllers.UpdateGuestCartItemQuantity(db))
			cartGroup.DELETE("/:item_id", cartControllers.RemoveGuestCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearGuestCart(db))
		}

		wishlistGroup := guestGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetGuestWishlist(db))
			wishlistGroup.POST("/", wishlistControllers.AddGuestWishlistItem(db))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.RemoveGuestWishlistItem(db))
			wishlistGroup.DELETE("/", wishlistControllers.ClearGuestWishlist(db))
		}
	}
}
