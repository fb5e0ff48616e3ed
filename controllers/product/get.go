package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

// GET /products/:id_or_slug
//
// Accepts a numeric id or a slug. Soft-deleted products are 404 here even
// though their order snapshots remain readable.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id_or_slug")
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product id or slug is required"})
			return
		}

		var product models.Product
		var err error
		if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
			err = db.First(&product, "id = ?", uint(id)).Error
		} else {
			err = db.First(&product, "slug = ?", key).Error
		}

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
