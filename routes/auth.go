package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/auth"
	"github.com/zoro-store/zoro-api/config"
)

// SetupAuthRoutes registers registration and login. Login accepts an
// optional guest_id and merges the guest's cart/wishlist into the account.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db, cfg))
		authGroup.POST("/login", auth.LoginHandler(db, cfg))
	}
}
