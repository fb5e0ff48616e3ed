package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

type WishlistItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// WishlistLine is wishlist membership joined with live product fields.
type WishlistLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	InStock   bool    `json:"in_stock"`
}

func wishlistView(items []models.WishlistItem) []WishlistLine {
	lines := make([]WishlistLine, 0, len(items))
	for _, item := range items {
		if item.Product.ID == 0 {
			continue
		}
		lines = append(lines, WishlistLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Image:     item.Product.FirstImage(),
			InStock:   item.Product.InStock,
		})
	}
	return lines
}

func getOrCreateWishlist(db *gorm.DB, userID string) (models.Wishlist, error) {
	var list models.Wishlist
	err := db.Where("user_id = ?", userID).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		list = models.Wishlist{UserID: userID}
		err = db.Create(&list).Error
	}
	return list, err
}

func loadWishlistItems(db *gorm.DB, wishlistID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := db.Preload("Product").Where("wishlist_id = ?", wishlistID).Order("added_at").Find(&items).Error
	return items, err
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		list, err := getOrCreateWishlist(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		items, err := loadWishlistItems(db, list.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, wishlistView(items))
	}
}

// POST /user/wishlist
//
// Membership is boolean, so re-adding a product is a no-op, not an error.
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input WishlistItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		list, err := getOrCreateWishlist(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var existing models.WishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", list.ID, input.ProductID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item := models.WishlistItem{
				WishlistID: list.ID,
				ProductID:  product.ID,
				AddedAt:    time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist item"})
			return
		}

		items, err := loadWishlistItems(db, list.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, wishlistView(items))
	}
}

// DELETE /user/wishlist/:product_id
func RemoveWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var list models.Wishlist
		if err := db.Where("user_id = ?", userIDVal.(string)).First(&list).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", list.ID, c.Param("product_id")).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}

// DELETE /user/wishlist
func ClearWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var list models.Wishlist
		if err := db.Where("user_id = ?", userIDVal.(string)).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		if err := db.Where("wishlist_id = ?", list.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}
