package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

func guestWishlistView(items []models.GuestWishlistItem) []WishlistLine {
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

func requireGuestID(c *gin.Context) (string, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return "", false
	}
	return guestID, true
}

// GET /guest/wishlist
func GetGuestWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var list models.GuestWishlist
		if err := db.Where("guest_id = ?", guestID).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, []WishlistLine{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var items []models.GuestWishlistItem
		if err := db.Preload("Product").Where("wishlist_id = ?", list.ID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, guestWishlistView(items))
	}
}

// POST /guest/wishlist
func AddGuestWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
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

		var list models.GuestWishlist
		err := db.Where("guest_id = ?", guestID).First(&list).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			list = models.GuestWishlist{GuestID: guestID}
			if err := db.Create(&list).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wishlist"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var existing models.GuestWishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", list.ID, input.ProductID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item := models.GuestWishlistItem{
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

		var items []models.GuestWishlistItem
		if err := db.Preload("Product").Where("wishlist_id = ?", list.ID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, guestWishlistView(items))
	}
}

// DELETE /guest/wishlist/:product_id
func RemoveGuestWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var list models.GuestWishlist
		if err := db.Where("guest_id = ?", guestID).First(&list).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", list.ID, c.Param("product_id")).
			Delete(&models.GuestWishlistItem{})
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

// DELETE /guest/wishlist
func ClearGuestWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var list models.GuestWishlist
		if err := db.Where("guest_id = ?", guestID).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		if err := db.Where("wishlist_id = ?", list.ID).Delete(&models.GuestWishlistItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}
