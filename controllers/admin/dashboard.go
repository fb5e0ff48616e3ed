package adminController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

// GET /admin/dashboard — headline numbers for the admin console.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, productCount, orderCount int64

		if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
			log.Println("❌ Failed to count users:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			log.Println("❌ Failed to count products:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			log.Println("❌ Failed to count orders:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		// Revenue counts only orders that were actually paid for.
		var revenue float64
		if err := db.Model(&models.Order{}).
			Where("status IN ?", []models.OrderStatus{
				models.OrderStatusPaid,
				models.OrderStatusShipped,
				models.OrderStatusDelivered,
			}).
			Select("COALESCE(SUM(total), 0)").
			Scan(&revenue).Error; err != nil {
			log.Println("❌ Failed to compute revenue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":    userCount,
			"products": productCount,
			"orders":   orderCount,
			"revenue":  revenue,
		})
	}
}
