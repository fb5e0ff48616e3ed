package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

// UpdateProductInput uses pointers so absent fields are left untouched.
type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Gender      *string   `json:"gender"`
	Collections *[]string `json:"collections"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Images      *[]string `json:"images"`
	Sizes       *[]string `json:"sizes"`
	Featured    *bool     `json:"featured"`
	NewArrival  *bool     `json:"new_arrival"`
	Rating      *float64  `json:"rating"`
	ReviewCount *int      `json:"review_count"`
}

// PUT /admin/products/:id
//
// The slug stays stable across renames so existing links keep working.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Gender != nil {
			product.Gender = *input.Gender
		}
		if input.Collections != nil {
			product.Collections = *input.Collections
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
				return
			}
			product.Price = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
				return
			}
			product.Stock = *input.Stock
			product.InStock = *input.Stock > 0
		}
		if input.Images != nil {
			product.Images = *input.Images
		}
		if input.Sizes != nil {
			product.Sizes = *input.Sizes
		}
		if input.Featured != nil {
			product.Featured = *input.Featured
		}
		if input.NewArrival != nil {
			product.NewArrival = *input.NewArrival
		}
		if input.Rating != nil {
			product.Rating = *input.Rating
		}
		if input.ReviewCount != nil {
			product.ReviewCount = *input.ReviewCount
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
