package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	cartControllers "github.com/zoro-store/zoro-api/controllers/cart"
	orderControllers "github.com/zoro-store/zoro-api/controllers/order"
	userControllers "github.com/zoro-store/zoro-api/controllers/user"
	wishlistControllers "github.com/zoro-store/zoro-api/controllers/wishlist"
	"github.com/zoro-store/zoro-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg))
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.AddCartItem(db))
			cartGroup.PATCH("/:item_id", cartControllers.UpdateCartItemQuantity(db))
			cartGroup.DELETE("/:item_id", cartControllers.RemoveCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/", wishlistControllers.AddWishlistItem(db))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.RemoveWishlistItem(db))
			wishlistGroup.DELETE("/", wishlistControllers.ClearWishlist(db))
		}

		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
	}
}
