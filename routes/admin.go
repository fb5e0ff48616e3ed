package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/config"
	adminController "github.com/zoro-store/zoro-api/controllers/admin"
	cartControllers "github.com/zoro-store/zoro-api/controllers/cart"
	orderControllers "github.com/zoro-store/zoro-api/controllers/order"
	productControllers "github.com/zoro-store/zoro-api/controllers/product"
	userControllers "github.com/zoro-store/zoro-api/controllers/user"
	"github.com/zoro-store/zoro-api/middleware"
)

// SetupAdminRoutes registers the admin console. Every endpoint requires a
// valid JWT and a fresh ADMIN role check against the database.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg), middleware.RequireAdmin(db))
	{
		adminGroup.GET("/dashboard", adminController.GetDashboardStats(db))
		adminGroup.POST("/upload", adminController.UploadProductImage(cfg))

		productGroup := adminGroup.Group("/products")
		{
			productGroup.POST("/", productControllers.CreateProduct(db))
			productGroup.PUT("/:id", productControllers.UpdateProduct(db))
			productGroup.DELETE("/:id", productControllers.DeleteProduct(db))
			productGroup.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		orderGroup := adminGroup.Group("/orders")
		{
			orderGroup.GET("/", orderControllers.GetAllOrders(db))
			orderGroup.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(db))
			orderGroup.GET("/ws", orderControllers.OrderWebSocketHandler)
		}

		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/users/:user_id/cart", cartControllers.GetAdminUserCart(db))
	}
}
